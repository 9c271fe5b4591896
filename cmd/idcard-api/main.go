// Command idcard-api serves a local copy of the profile backend for
// development and demos.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/jask/idcard/internal/config"
	"github.com/jask/idcard/internal/devapi"
	"github.com/jask/idcard/internal/logging"
)

func main() {
	l := logging.New(os.Stderr, "devapi", log.InfoLevel)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.Warn("reading .env", "err", err)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		l.Fatal("config", "err", err)
	}
	l.SetLevel(logging.ParseLevel(cfg.Log.Level))

	dir, err := devapi.NewDirectory(cfg.Users)
	if err != nil {
		l.Fatal("user directory", "err", err)
	}
	srv := devapi.NewServer(cfg.Server.Addr, dir, devapi.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL), l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			l.Fatal("server", "err", err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("shutdown", "err", err)
	}
}
