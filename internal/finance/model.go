package finance

// TransactionKind is the closed set of transaction types. Raw input is
// normalized once at the boundary by ParseTransactionKind.
type TransactionKind string

const (
	KindIncome  TransactionKind = "Income"
	KindExpense TransactionKind = "Expense"
)

// REQUESTS START:

// NewTransactionRequest carries raw caller input for a new transaction.
// Amount stays a string until the service validates it; category, description
// and date are free text.
type NewTransactionRequest struct {
	Kind        string
	Amount      string
	Category    string
	Description string
	Date        string
}

// UpdateTransactionRequest updates a transaction in place. Nil fields keep
// their stored values.
type UpdateTransactionRequest struct {
	ID          int64
	Kind        *string
	Amount      *string
	Category    *string
	Description *string
	Date        *string
}

type BudgetRequest struct {
	Category string
	Amount   string
	Month    int
	Year     int
}

// REQUESTS END:

// MODELS:

type Transaction struct {
	ID          int64
	OwnerID     int64
	Kind        TransactionKind
	Amount      float64
	Category    string
	Description string
	Date        string
}

// TransactionUpdate is the validated form of UpdateTransactionRequest handed
// to storage. Nil fields mean "keep the stored value".
type TransactionUpdate struct {
	ID          int64
	Kind        *string
	Amount      *float64
	Category    *string
	Description *string
	Date        *string
}

type Budget struct {
	ID       int64
	OwnerID  int64
	Category string
	Amount   float64
	Month    int
	Year     int
}

// RESPONSES:

type TransactionTotals struct {
	Incomes  float64
	Expenses float64
	Net      float64
}
