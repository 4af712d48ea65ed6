package storage

import "database/sql"

type dbTransaction struct {
	ID          int64
	UserID      int64
	Kind        string
	Amount      float64
	Category    string
	Description sql.NullString
	Date        string
}

type dbTotals struct {
	Incomes  float64
	Expenses float64
}
