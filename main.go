package main

import (
	"fmt"

	"github.com/fatali-fataliyev/finance_tracker/internal/cli"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/fatali-fataliyev/finance_tracker/internal/storage"
	"github.com/fatali-fataliyev/finance_tracker/logging"
)

func main() {
	if err := logging.Init("debug"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return
	}

	logging.Logger.Info("application starting...")

	db, err := storage.Init()
	if err != nil {
		logging.Logger.Errorf("failed to initialize database: %v", err)
		return
	}
	defer db.Close()

	storageInstance := storage.NewSQLiteStorage(db)
	tracker := finance.NewTracker(storageInstance)

	menu := cli.NewMenu(&tracker)
	menu.Run()

	logging.Logger.Info("application stopped")
}
