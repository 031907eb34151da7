package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mvisser/banknote/internal/config"
	"github.com/mvisser/banknote/internal/database"
	"github.com/mvisser/banknote/internal/exception"
	excStore "github.com/mvisser/banknote/internal/exception/store"
	banknoteHttp "github.com/mvisser/banknote/internal/http"
	batchHandler "github.com/mvisser/banknote/internal/http/batch"
	excHandler "github.com/mvisser/banknote/internal/http/exception"
	importHandler "github.com/mvisser/banknote/internal/http/importcsv"
	reportHandler "github.com/mvisser/banknote/internal/http/report"
	rulesHandler "github.com/mvisser/banknote/internal/http/rules"
	"github.com/mvisser/banknote/internal/importer"
	"github.com/mvisser/banknote/internal/reporting"
	"github.com/mvisser/banknote/internal/rules"
	rulesStore "github.com/mvisser/banknote/internal/rules/store"
	"github.com/mvisser/banknote/internal/statement"
	stmtStore "github.com/mvisser/banknote/internal/statement/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		statementService = statement.NewService(stmtStore.New(db))
		rulesService     = rules.NewService(rulesStore.New(db))
		exceptionService = exception.NewService(excStore.New(db))
		importService    = importer.NewService()
		reportingService = reporting.NewService(statementService, rulesService, exceptionService, cfg.Report.SavingsCategory)
	)

	var (
		importH = importHandler.NewHandler(importService, statementService)
		batchH  = batchHandler.NewHandler(statementService)
		reportH = reportHandler.NewHandler(reportingService)
		rulesH  = rulesHandler.NewHandler(rulesService)
		excH    = excHandler.NewHandler(exceptionService)
	)

	router := banknoteHttp.New(importH, batchH, reportH, rulesH, excH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
