package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/contextutil"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/fatali-fataliyev/finance_tracker/logging"
	sqlite3 "modernc.org/sqlite"
)

// --- INIT START --- //

const defaultDBPath = "finance_app.db"

// SQLITE_CONSTRAINT_UNIQUE
const sqliteConstraintUnique = 2067

func Init() (*sql.DB, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	logging.Logger.Infof("Opening database file: %s", dbPath)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %v", err)
	}

	// One interactive session at a time; a single connection keeps every
	// statement serialized.
	db.SetMaxOpenConns(1)

	logging.Logger.Info("Running migrations...")
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	logging.Logger.Info("Connected to database successfully")
	return db, nil
}

// --- INIT END --- //

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) GetStorageType() string {
	return "sqlite"
}

func (s *SQLiteStorage) SaveAccount(ctx context.Context, account auth.Account) (int64, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO users (username, password) VALUES (?, ?) RETURNING id;"
	var id int64
	err := s.db.QueryRowContext(ctx, query, account.UserName, account.PasswordDigest).Scan(&id)
	if err != nil {
		var sqliteErr *sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintUnique {
			return 0, appErrors.ErrorResponse{
				Code:    appErrors.ErrDuplicateName,
				Message: "Username already exists. Please choose a different username.",
			}
		}

		logging.Logger.Errorf("[TraceID=%s] | failed to save account in Storage.SaveAccount() function | Error: %v", traceID, err)
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Registration failed, try again later.",
		}
	}
	return id, nil
}

func (s *SQLiteStorage) GetAccountByCredentials(ctx context.Context, username string, passwordDigest string) (auth.Account, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, username, password FROM users WHERE username = ? AND password = ?;"
	var account auth.Account
	err := s.db.QueryRowContext(ctx, query, username, passwordDigest).Scan(&account.ID, &account.UserName, &account.PasswordDigest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Account{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Invalid username or password. Please try again.",
			}
		}

		logging.Logger.Errorf("[TraceID=%s] | failed to scan account row in Storage.GetAccountByCredentials() function | Error: %v", traceID, err)
		return auth.Account{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Login failed, try again later.",
		}
	}
	return account, nil
}

func (s *SQLiteStorage) SaveTransaction(ctx context.Context, t finance.Transaction) (int64, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO transactions (user_id, type, amount, category, description, date) VALUES (?, ?, ?, ?, ?, ?) RETURNING id;"
	var id int64
	err := s.db.QueryRowContext(ctx, query, t.OwnerID, string(t.Kind), t.Amount, t.Category, t.Description, t.Date).Scan(&id)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to save transaction in Storage.SaveTransaction() function | Error: %v", traceID, err)
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to save transaction, try again later.",
		}
	}
	return id, nil
}

func NilToNullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Valid: true, Float64: *v}
}

func NilToNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{Valid: true, String: *v}
}

// UpdateTransaction is a single statement scoped by (id, owner): nil fields
// keep their stored values, and a missing row and a row owned by another
// account are indistinguishable.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, ownerID int64, fields finance.TransactionUpdate) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := `UPDATE transactions
		SET type = COALESCE(?, type),
		    amount = COALESCE(?, amount),
		    category = COALESCE(?, category),
		    description = COALESCE(?, description),
		    date = COALESCE(?, date)
		WHERE id = ? AND user_id = ?;`
	res, err := s.db.ExecContext(ctx, query,
		NilToNullString(fields.Kind),
		NilToNullFloat64(fields.Amount),
		NilToNullString(fields.Category),
		NilToNullString(fields.Description),
		NilToNullString(fields.Date),
		fields.ID,
		ownerID,
	)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to update transaction in Storage.UpdateTransaction() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to update transaction, try again later.",
		}
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check affected rows in Storage.UpdateTransaction() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to update transaction, try again later.",
		}
	}
	if rowsAffected == 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction not found or you don't have permission to update it.",
		}
	}
	return nil
}

func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, ownerID int64, transactionID int64) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "DELETE FROM transactions WHERE id = ? AND user_id = ?;"
	res, err := s.db.ExecContext(ctx, query, transactionID, ownerID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to delete transaction in Storage.DeleteTransaction() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete transaction, try again later.",
		}
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check affected rows in Storage.DeleteTransaction() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete transaction, try again later.",
		}
	}
	if rowsAffected == 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction not found or you don't have permission to delete it.",
		}
	}
	return nil
}

func (s *SQLiteStorage) processTransactionRows(ctx context.Context, rows *sql.Rows) ([]finance.Transaction, error) {
	traceID := contextutil.TraceIDFromContext(ctx)
	defer rows.Close()

	var transactions []finance.Transaction

	for rows.Next() {
		var t dbTransaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.Amount, &t.Category, &t.Description, &t.Date)
		if err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.processTransactionRows() function | Error: %v", traceID, err)
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrInternal,
				Message: "Failed to get transactions, try again later.",
			}
		}

		transactions = append(transactions, finance.Transaction{
			ID:          t.ID,
			OwnerID:     t.UserID,
			Kind:        finance.TransactionKind(t.Kind),
			Amount:      t.Amount,
			Category:    t.Category,
			Description: t.Description.String,
			Date:        t.Date,
		})
	}

	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to iterate rows in Storage.processTransactionRows() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get transactions, try again later.",
		}
	}

	return transactions, nil
}

func (s *SQLiteStorage) GetTransactions(ctx context.Context, ownerID int64) ([]finance.Transaction, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, user_id, type, amount, category, description, date FROM transactions WHERE user_id = ? ORDER BY id;"
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to get transactions in Storage.GetTransactions() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get transactions, try again later.",
		}
	}

	return s.processTransactionRows(ctx, rows)
}

func (s *SQLiteStorage) GetTransactionTotals(ctx context.Context, ownerID int64) (finance.TransactionTotals, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := `
	SELECT
		IFNULL(SUM(CASE WHEN type = 'Income' THEN amount ELSE 0 END), 0) AS incomes,
		IFNULL(SUM(CASE WHEN type = 'Expense' THEN amount ELSE 0 END), 0) AS expenses
	FROM transactions
	WHERE user_id = ?;
	`

	var totals dbTotals
	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(&totals.Incomes, &totals.Expenses)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to get transaction totals in Storage.GetTransactionTotals() function | Error: %v", traceID, err)
		return finance.TransactionTotals{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get transaction totals, try again later.",
		}
	}

	return finance.TransactionTotals{
		Incomes:  totals.Incomes,
		Expenses: totals.Expenses,
		Net:      totals.Incomes - totals.Expenses,
	}, nil
}

// SaveBudget upserts on the natural key (user_id, category, month, year),
// replacing only the amount when the row already exists.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, b finance.Budget) (int64, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := `INSERT INTO budgets (user_id, category, budget_amount, month, year)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, month, year)
		DO UPDATE SET budget_amount = excluded.budget_amount
		RETURNING id;`
	var id int64
	err := s.db.QueryRowContext(ctx, query, b.OwnerID, b.Category, b.Amount, b.Month, b.Year).Scan(&id)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to save budget in Storage.SaveBudget() function | Error: %v", traceID, err)
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to set budget, try again later.",
		}
	}
	return id, nil
}
