package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/contextutil"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/fatali-fataliyev/finance_tracker/logging"
	"github.com/google/uuid"
)

// Menu is the interactive console front end. It only collects input and
// renders results; all validation and ownership checks live in the service.
type Menu struct {
	service *finance.Tracker
	reader  *bufio.Reader
	eof     bool
}

func NewMenu(service *finance.Tracker) *Menu {
	return &Menu{
		service: service,
		reader:  bufio.NewReader(os.Stdin),
	}
}

// opCtx seeds a fresh trace id for one service operation.
func opCtx() context.Context {
	return contextutil.WithTraceID(context.Background(), uuid.New().String())
}

// prompt reads one input line. A read error marks the input as exhausted so
// the menu loops stop instead of spinning on empty answers.
func (m *Menu) prompt(label string) string {
	fmt.Print(label)
	line, err := m.reader.ReadString('\n')
	if err != nil {
		m.eof = true
	}
	return strings.TrimRight(line, "\r\n")
}

func failureMessage(err error) string {
	var appErr appErrors.ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	logging.Logger.Errorf("unexpected failure: %v", err)
	return "Something went wrong, please try again later."
}

func (m *Menu) Run() {
	for {
		fmt.Println("\n--- Personal Finance Management Application ---")
		fmt.Println("1. Register")
		fmt.Println("2. Login")
		fmt.Println("3. Exit")

		choice := m.prompt("Enter your choice: ")
		if m.eof {
			fmt.Println("Goodbye!")
			return
		}

		switch choice {
		case "1":
			m.register()
		case "2":
			// The authenticated account id lives in this local for the
			// session and is passed into every service call explicitly.
			if accountID, ok := m.login(); ok {
				m.sessionMenu(accountID)
			}
		case "3":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) register() {
	newAccount := auth.NewAccount{
		UserName:        m.prompt("Enter a unique username: "),
		Password:        m.prompt("Enter a password: "),
		PasswordConfirm: m.prompt("Confirm your password: "),
	}
	if m.eof {
		return
	}

	if _, err := m.service.RegisterAccount(opCtx(), newAccount); err != nil {
		fmt.Println(failureMessage(err))
		return
	}
	fmt.Println("Registration successful!")
}

func (m *Menu) login() (int64, bool) {
	credentials := auth.Credentials{
		UserName: m.prompt("Enter your username: "),
		Password: m.prompt("Enter your password: "),
	}
	if m.eof {
		return 0, false
	}

	accountID, err := m.service.Authenticate(opCtx(), credentials)
	if err != nil {
		fmt.Println(failureMessage(err))
		return 0, false
	}
	fmt.Printf("Welcome back, %s!\n", credentials.UserName)
	return accountID, true
}

func (m *Menu) sessionMenu(accountID int64) {
	for {
		fmt.Println("\n--- Main Menu ---")
		fmt.Println("1. Add Transaction")
		fmt.Println("2. Update Transaction")
		fmt.Println("3. Delete Transaction")
		fmt.Println("4. View Transactions")
		fmt.Println("5. Set Monthly Budget")
		fmt.Println("6. View Summary")
		fmt.Println("7. Logout")

		choice := m.prompt("Enter your choice: ")
		if m.eof {
			fmt.Println("Logged out.")
			return
		}

		switch choice {
		case "1":
			m.addTransaction(accountID)
		case "2":
			m.updateTransaction(accountID)
		case "3":
			m.deleteTransaction(accountID)
		case "4":
			m.viewTransactions(accountID)
		case "5":
			m.setBudget(accountID)
		case "6":
			m.viewSummary(accountID)
		case "7":
			fmt.Println("Logged out.")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) addTransaction(accountID int64) {
	request := finance.NewTransactionRequest{
		Kind:        m.prompt("Enter transaction type (Income/Expense): "),
		Amount:      m.prompt("Enter the amount: "),
		Category:    strings.TrimSpace(m.prompt("Enter the category (e.g., Food, Rent, Salary): ")),
		Description: m.prompt("Enter a brief description (optional): "),
		Date:        m.prompt("Enter the date of transaction (YYYY-MM-DD): "),
	}
	if m.eof {
		return
	}

	if _, err := m.service.AddTransaction(opCtx(), accountID, request); err != nil {
		fmt.Println(failureMessage(err))
		return
	}
	fmt.Println("Transaction added successfully!")
}

func (m *Menu) promptTransactionID(label string) (int64, bool) {
	raw := m.prompt(label)
	if m.eof {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		fmt.Printf("Invalid transaction ID: %q\n", raw)
		return 0, false
	}
	return id, true
}

// optionalField maps empty input to nil so the stored value is kept.
func optionalField(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func (m *Menu) updateTransaction(accountID int64) {
	id, ok := m.promptTransactionID("Enter the transaction ID to update: ")
	if !ok {
		return
	}

	current, found := m.findTransaction(accountID, id)
	if !found {
		fmt.Println("Transaction not found or you don't have permission to update it.")
		return
	}

	request := finance.UpdateTransactionRequest{
		ID:          id,
		Kind:        optionalField(strings.TrimSpace(m.prompt(fmt.Sprintf("Enter new transaction type (Current: %s): ", current.Kind)))),
		Amount:      optionalField(strings.TrimSpace(m.prompt(fmt.Sprintf("Enter new amount (Current: %v): ", current.Amount)))),
		Category:    optionalField(strings.TrimSpace(m.prompt(fmt.Sprintf("Enter new category (Current: %s): ", current.Category)))),
		Description: optionalField(strings.TrimSpace(m.prompt(fmt.Sprintf("Enter new description (Current: %s): ", current.Description)))),
		Date:        optionalField(strings.TrimSpace(m.prompt(fmt.Sprintf("Enter new date (Current: %s): ", current.Date)))),
	}
	if m.eof {
		return
	}

	if err := m.service.UpdateTransaction(opCtx(), accountID, request); err != nil {
		fmt.Println(failureMessage(err))
		return
	}
	fmt.Println("Transaction updated successfully!")
}

// findTransaction looks the id up in the owner's listing so the update
// prompts can show current values. Ownership is still enforced by the
// mutation itself.
func (m *Menu) findTransaction(accountID int64, id int64) (finance.Transaction, bool) {
	transactions, err := m.service.ListTransactions(opCtx(), accountID)
	if err != nil {
		return finance.Transaction{}, false
	}
	for _, txn := range transactions {
		if txn.ID == id {
			return txn, true
		}
	}
	return finance.Transaction{}, false
}

func (m *Menu) deleteTransaction(accountID int64) {
	id, ok := m.promptTransactionID("Enter the transaction ID to delete: ")
	if !ok {
		return
	}

	if err := m.service.DeleteTransaction(opCtx(), accountID, id); err != nil {
		fmt.Println(failureMessage(err))
		return
	}
	fmt.Println("Transaction deleted successfully!")
}

func (m *Menu) viewTransactions(accountID int64) {
	transactions, err := m.service.ListTransactions(opCtx(), accountID)
	if err != nil {
		fmt.Println(failureMessage(err))
		return
	}

	if len(transactions) == 0 {
		fmt.Println("No transactions found.")
		return
	}

	fmt.Println("\n--- Your Transactions ---")
	for _, txn := range transactions {
		fmt.Printf("ID: %d, Type: %s, Amount: %v, Category: %s, Description: %s, Date: %s\n",
			txn.ID, txn.Kind, txn.Amount, txn.Category, txn.Description, txn.Date)
	}
}

func (m *Menu) setBudget(accountID int64) {
	request := finance.BudgetRequest{
		Category: strings.TrimSpace(m.prompt("Enter the category (e.g., Food, Rent, Salary): ")),
		Amount:   m.prompt("Enter the monthly budget amount for this category: "),
	}
	if m.eof {
		return
	}

	if _, err := m.service.SetBudget(opCtx(), accountID, request); err != nil {
		fmt.Println(failureMessage(err))
		return
	}
	fmt.Println("Budget set successfully!")
}

func (m *Menu) viewSummary(accountID int64) {
	totals, err := m.service.TransactionTotals(opCtx(), accountID)
	if err != nil {
		fmt.Println(failureMessage(err))
		return
	}

	fmt.Println("\n--- Summary ---")
	fmt.Printf("Total income:   %.2f\n", totals.Incomes)
	fmt.Printf("Total expenses: %.2f\n", totals.Expenses)
	fmt.Printf("Net:            %.2f\n", totals.Net)
}
