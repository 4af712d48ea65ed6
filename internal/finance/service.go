package finance

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
)

type Tracker struct {
	storage     Storage
	StorageType string
}

func NewTracker(s Storage) Tracker {
	return Tracker{
		storage:     s,
		StorageType: s.GetStorageType(),
	}
}

type Storage interface {
	SaveAccount(ctx context.Context, account auth.Account) (int64, error)
	GetAccountByCredentials(ctx context.Context, username string, passwordDigest string) (auth.Account, error)
	SaveTransaction(ctx context.Context, t Transaction) (int64, error)
	UpdateTransaction(ctx context.Context, ownerID int64, fields TransactionUpdate) error
	DeleteTransaction(ctx context.Context, ownerID int64, transactionID int64) error
	GetTransactions(ctx context.Context, ownerID int64) ([]Transaction, error)
	GetTransactionTotals(ctx context.Context, ownerID int64) (TransactionTotals, error)
	SaveBudget(ctx context.Context, b Budget) (int64, error)
	GetStorageType() string
}

// ParseTransactionKind normalizes raw input (trim + case-fold) to one of the
// two canonical kinds.
func ParseTransactionKind(raw string) (TransactionKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	}
	return "", appErrors.ErrorResponse{
		Code:    appErrors.ErrInvalidKind,
		Message: fmt.Sprintf("Invalid transaction type: %q, please enter 'Income' or 'Expense'.", raw),
	}
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidAmount,
			Message: fmt.Sprintf("Invalid amount: %q, please enter a number.", raw),
		}
	}
	return amount, nil
}

// RegisterAccount stores a new account with a digested password and returns
// its id. The password confirmation is checked before any storage access;
// name uniqueness is detected only at the insert itself.
func (tr *Tracker) RegisterAccount(ctx context.Context, newAccount auth.NewAccount) (int64, error) {
	if newAccount.Password != newAccount.PasswordConfirm {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrPasswordMismatch,
			Message: "Passwords do not match. Please try again.",
		}
	}

	account := auth.Account{
		UserName:       newAccount.UserName,
		PasswordDigest: auth.HashPassword(newAccount.Password),
	}

	id, err := tr.storage.SaveAccount(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("failed to register account: %w", err)
	}
	return id, nil
}

// Authenticate returns the account id for an exact (name, digest) match.
// Unknown name and wrong password produce the same failure.
func (tr *Tracker) Authenticate(ctx context.Context, credentials auth.Credentials) (int64, error) {
	account, err := tr.storage.GetAccountByCredentials(ctx, credentials.UserName, auth.HashPassword(credentials.Password))
	if err != nil {
		return 0, fmt.Errorf("failed to authenticate: %w", err)
	}
	return account.ID, nil
}

func (tr *Tracker) AddTransaction(ctx context.Context, ownerID int64, transaction NewTransactionRequest) (int64, error) {
	kind, err := ParseTransactionKind(transaction.Kind)
	if err != nil {
		return 0, err
	}
	amount, err := parseAmount(transaction.Amount)
	if err != nil {
		return 0, err
	}

	txn := Transaction{
		OwnerID:     ownerID,
		Kind:        kind,
		Amount:      amount,
		Category:    transaction.Category,
		Description: transaction.Description,
		Date:        transaction.Date,
	}

	id, err := tr.storage.SaveTransaction(ctx, txn)
	if err != nil {
		return 0, fmt.Errorf("failed to save transaction to db: %w", err)
	}
	return id, nil
}

// UpdateTransaction applies the non-nil fields of the request to the owner's
// transaction. A missing id and an id owned by someone else fail the same way.
func (tr *Tracker) UpdateTransaction(ctx context.Context, ownerID int64, fields UpdateTransactionRequest) error {
	update := TransactionUpdate{
		ID:          fields.ID,
		Category:    fields.Category,
		Description: fields.Description,
		Date:        fields.Date,
	}

	if fields.Kind != nil {
		kind, err := ParseTransactionKind(*fields.Kind)
		if err != nil {
			return err
		}
		canonical := string(kind)
		update.Kind = &canonical
	}
	if fields.Amount != nil {
		amount, err := parseAmount(*fields.Amount)
		if err != nil {
			return err
		}
		update.Amount = &amount
	}

	if err := tr.storage.UpdateTransaction(ctx, ownerID, update); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (tr *Tracker) DeleteTransaction(ctx context.Context, ownerID int64, transactionID int64) error {
	if err := tr.storage.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the owner's transactions in insertion order. An
// owner with no transactions gets an empty slice, not an error.
func (tr *Tracker) ListTransactions(ctx context.Context, ownerID int64) ([]Transaction, error) {
	transactions, err := tr.storage.GetTransactions(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

func (tr *Tracker) TransactionTotals(ctx context.Context, ownerID int64) (TransactionTotals, error) {
	totals, err := tr.storage.GetTransactionTotals(ctx, ownerID)
	if err != nil {
		return TransactionTotals{}, fmt.Errorf("failed to get transaction totals: %w", err)
	}
	return totals, nil
}

// SetBudget upserts the budget amount for (owner, category, month, year).
// Zero month/year default to the current wall-clock date.
func (tr *Tracker) SetBudget(ctx context.Context, ownerID int64, budget BudgetRequest) (int64, error) {
	amount, err := parseAmount(budget.Amount)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	month := budget.Month
	year := budget.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	b := Budget{
		OwnerID:  ownerID,
		Category: budget.Category,
		Amount:   amount,
		Month:    month,
		Year:     year,
	}

	id, err := tr.storage.SaveBudget(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("failed to set budget: %w", err)
	}
	return id, nil
}
