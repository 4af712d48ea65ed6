package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/fatali-fataliyev/finance_tracker/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.Logger = logrus.New()
	os.Exit(m.Run())
}

func newSQLiteTracker(t *testing.T) (finance.Tracker, *sql.DB) {
	t.Helper()
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "finance_app.db"))

	db, err := Init()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return finance.NewTracker(NewSQLiteStorage(db)), db
}

func TestSQLiteDuplicateName(t *testing.T) {
	ctx := context.Background()
	tracker, db := newSQLiteTracker(t)

	register(t, tracker, "alice", "pw1")

	_, err := tracker.RegisterAccount(ctx, auth.NewAccount{
		UserName:        "alice",
		Password:        "other",
		PasswordConfirm: "other",
	})
	if !appErrors.HasCode(err, appErrors.ErrDuplicateName) {
		t.Errorf("Expected DUPLICATE NAME, got: %v", err)
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?;", "alice").Scan(&count))
	require.Equal(t, 1, count)
}

func TestSQLitePartialUpdate(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newSQLiteTracker(t)

	aliceID := register(t, tracker, "alice", "pw1")
	bobID := register(t, tracker, "bob", "pw2")

	txnID, err := tracker.AddTransaction(ctx, aliceID, finance.NewTransactionRequest{
		Kind: "Income", Amount: "1000", Category: "Salary", Description: "January", Date: "2024-01-01",
	})
	require.NoError(t, err)

	// The owner changes one field; everything else keeps its stored value.
	amount := "200"
	require.NoError(t, tracker.UpdateTransaction(ctx, aliceID, finance.UpdateTransactionRequest{ID: txnID, Amount: &amount}))

	list, err := tracker.ListTransactions(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	txn := list[0]
	require.Equal(t, 200.0, txn.Amount)
	require.Equal(t, finance.KindIncome, txn.Kind)
	require.Equal(t, "Salary", txn.Category)
	require.Equal(t, "January", txn.Description)
	require.Equal(t, "2024-01-01", txn.Date)

	// A non-owner gets NOT FOUND and the row stays untouched.
	other := "999"
	err = tracker.UpdateTransaction(ctx, bobID, finance.UpdateTransactionRequest{ID: txnID, Amount: &other})
	if !appErrors.HasCode(err, appErrors.ErrNotFound) {
		t.Errorf("Expected NOT FOUND, got: %v", err)
	}
	list, err = tracker.ListTransactions(ctx, aliceID)
	require.NoError(t, err)
	require.Equal(t, 200.0, list[0].Amount)
}

func TestSQLiteDeleteThenGone(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newSQLiteTracker(t)

	aliceID := register(t, tracker, "alice", "pw1")
	txnID, err := tracker.AddTransaction(ctx, aliceID, finance.NewTransactionRequest{
		Kind: "Expense", Amount: "10", Category: "Food", Date: "2024-01-01",
	})
	require.NoError(t, err)

	require.NoError(t, tracker.DeleteTransaction(ctx, aliceID, txnID))

	category := "Rent"
	err = tracker.UpdateTransaction(ctx, aliceID, finance.UpdateTransactionRequest{ID: txnID, Category: &category})
	if !appErrors.HasCode(err, appErrors.ErrNotFound) {
		t.Errorf("Expected NOT FOUND on update after delete, got: %v", err)
	}
	err = tracker.DeleteTransaction(ctx, aliceID, txnID)
	if !appErrors.HasCode(err, appErrors.ErrNotFound) {
		t.Errorf("Expected NOT FOUND on second delete, got: %v", err)
	}

	list, err := tracker.ListTransactions(ctx, aliceID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSQLiteBudgetUpsert(t *testing.T) {
	ctx := context.Background()
	tracker, db := newSQLiteTracker(t)

	aliceID := register(t, tracker, "alice", "pw1")

	firstID, err := tracker.SetBudget(ctx, aliceID, finance.BudgetRequest{Category: "Food", Amount: "300", Month: 1, Year: 2024})
	require.NoError(t, err)

	secondID, err := tracker.SetBudget(ctx, aliceID, finance.BudgetRequest{Category: "Food", Amount: "450", Month: 1, Year: 2024})
	require.NoError(t, err)
	require.Equal(t, firstID, secondID)

	var count int
	var amount float64
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*), IFNULL(MAX(budget_amount), 0) FROM budgets WHERE user_id = ? AND category = ? AND month = 1 AND year = 2024;",
		aliceID, "Food",
	).Scan(&count, &amount))
	require.Equal(t, 1, count)
	require.Equal(t, 450.0, amount)
}

func TestSQLiteSchemaIsIdempotentAndDurable(t *testing.T) {
	ctx := context.Background()
	tracker, db := newSQLiteTracker(t)

	aliceID := register(t, tracker, "alice", "pw1")
	require.NoError(t, db.Close())

	// Reopening the same file re-runs Init: migrations are a no-op and the
	// rows are still there.
	reopened, err := Init()
	require.NoError(t, err)
	defer reopened.Close()

	tracker = finance.NewTracker(NewSQLiteStorage(reopened))
	loginID, err := tracker.Authenticate(ctx, auth.Credentials{UserName: "alice", Password: "pw1"})
	require.NoError(t, err)
	require.Equal(t, aliceID, loginID)
}
