package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kittipatv/shopdesk/internal/config"
	"github.com/kittipatv/shopdesk/internal/sheetd"
	"github.com/kittipatv/shopdesk/internal/sheetd/workbook"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := workbook.Open(cfg.Sheetd.WorkbookPath)
	if err != nil {
		slog.Error("failed to open workbook", "path", cfg.Sheetd.WorkbookPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	router := sheetd.NewRouter(sheetd.NewHandler(store))

	port := fmt.Sprintf(":%d", cfg.Sheetd.Port)
	slog.Info("starting sheet endpoint", "port", port, "workbook", cfg.Sheetd.WorkbookPath)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
