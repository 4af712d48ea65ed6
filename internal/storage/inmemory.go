package storage

import (
	"context"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	authModel "github.com/fatali-fataliyev/finance_tracker/internal/auth"
	financeModel "github.com/fatali-fataliyev/finance_tracker/internal/finance"
)

// InMemoryStorage mirrors the SQLite contract over slices so the services
// can be exercised without a database file.
type InMemoryStorage struct {
	accounts     []authModel.Account
	transactions []financeModel.Transaction
	budgets      []financeModel.Budget

	nextAccountID     int64
	nextTransactionID int64
	nextBudgetID      int64
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) SaveAccount(ctx context.Context, account authModel.Account) (int64, error) {
	for _, existing := range inMem.accounts {
		if existing.UserName == account.UserName {
			return 0, appErrors.ErrorResponse{
				Code:    appErrors.ErrDuplicateName,
				Message: "Username already exists. Please choose a different username.",
			}
		}
	}
	inMem.nextAccountID++
	account.ID = inMem.nextAccountID
	inMem.accounts = append(inMem.accounts, account)
	return account.ID, nil
}

func (inMem *InMemoryStorage) GetAccountByCredentials(ctx context.Context, username string, passwordDigest string) (authModel.Account, error) {
	for _, account := range inMem.accounts {
		if account.UserName == username && account.PasswordDigest == passwordDigest {
			return account, nil
		}
	}
	return authModel.Account{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Invalid username or password. Please try again.",
	}
}

func (inMem *InMemoryStorage) SaveTransaction(ctx context.Context, t financeModel.Transaction) (int64, error) {
	inMem.nextTransactionID++
	t.ID = inMem.nextTransactionID
	inMem.transactions = append(inMem.transactions, t)
	return t.ID, nil
}

func (inMem *InMemoryStorage) UpdateTransaction(ctx context.Context, ownerID int64, fields financeModel.TransactionUpdate) error {
	for i, t := range inMem.transactions {
		if t.ID != fields.ID || t.OwnerID != ownerID {
			continue
		}
		if fields.Kind != nil {
			inMem.transactions[i].Kind = financeModel.TransactionKind(*fields.Kind)
		}
		if fields.Amount != nil {
			inMem.transactions[i].Amount = *fields.Amount
		}
		if fields.Category != nil {
			inMem.transactions[i].Category = *fields.Category
		}
		if fields.Description != nil {
			inMem.transactions[i].Description = *fields.Description
		}
		if fields.Date != nil {
			inMem.transactions[i].Date = *fields.Date
		}
		return nil
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Transaction not found or you don't have permission to update it.",
	}
}

func (inMem *InMemoryStorage) DeleteTransaction(ctx context.Context, ownerID int64, transactionID int64) error {
	for i, t := range inMem.transactions {
		if t.ID == transactionID && t.OwnerID == ownerID {
			inMem.transactions = append(inMem.transactions[:i], inMem.transactions[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Transaction not found or you don't have permission to delete it.",
	}
}

func (inMem *InMemoryStorage) GetTransactions(ctx context.Context, ownerID int64) ([]financeModel.Transaction, error) {
	result := []financeModel.Transaction{}
	for _, t := range inMem.transactions {
		if t.OwnerID == ownerID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (inMem *InMemoryStorage) GetTransactionTotals(ctx context.Context, ownerID int64) (financeModel.TransactionTotals, error) {
	var totals financeModel.TransactionTotals
	for _, t := range inMem.transactions {
		if t.OwnerID != ownerID {
			continue
		}
		switch t.Kind {
		case financeModel.KindIncome:
			totals.Incomes += t.Amount
		case financeModel.KindExpense:
			totals.Expenses += t.Amount
		}
	}
	totals.Net = totals.Incomes - totals.Expenses
	return totals, nil
}

func (inMem *InMemoryStorage) SaveBudget(ctx context.Context, b financeModel.Budget) (int64, error) {
	for i, existing := range inMem.budgets {
		if existing.OwnerID == b.OwnerID && existing.Category == b.Category && existing.Month == b.Month && existing.Year == b.Year {
			inMem.budgets[i].Amount = b.Amount
			return existing.ID, nil
		}
	}
	inMem.nextBudgetID++
	b.ID = inMem.nextBudgetID
	inMem.budgets = append(inMem.budgets, b)
	return b.ID, nil
}
