package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/idcard/internal/api"
	"github.com/jask/idcard/internal/config"
	"github.com/jask/idcard/internal/logging"
	"github.com/jask/idcard/internal/secrets"
	"github.com/jask/idcard/internal/tui"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, logFile, err := logging.OpenFile(cfg.Log.File, "idcard", cfg.Log.Level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logFile.Close()

	if err := os.MkdirAll(cfg.Store.Path, 0o700); err != nil {
		log.Fatalf("mkdir store dir: %v", err)
	}
	store, storeCloser, err := secrets.Open(cfg.Store)
	if err != nil {
		log.Fatalf("secrets: %v", err)
	}
	defer storeCloser.Close()

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	logger.Info("starting", "api", cfg.API.BaseURL, "store", cfg.Store.Backend)

	app := tui.New(ctx, cfg.UI, tui.Deps{
		API:   client,
		Store: store,
		Log:   logger,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Printf("error: %v\n", err)
	}
}
