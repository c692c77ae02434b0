package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/diewo77/freelance-invoices/auth"
	"github.com/diewo77/freelance-invoices/internal/config"
	"github.com/diewo77/freelance-invoices/internal/db"
	"github.com/diewo77/freelance-invoices/internal/handlers"
	"github.com/diewo77/freelance-invoices/internal/logging"
	"github.com/diewo77/freelance-invoices/internal/store"
	"github.com/diewo77/freelance-invoices/internal/store/filestore"
	"github.com/diewo77/freelance-invoices/internal/store/gormstore"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	logging.Setup()

	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if *migrateOnlyFlag {
		slog.Info("migrations completed")
		return
	}

	// Expire sessions whose user no longer exists.
	ah := handlers.NewAuthHandler(st)
	auth.SetUserVerifier(ah.VerifyUser())

	app := NewApp(st, ah)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(app),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port, "store", cfg.Store.Driver, "dev", cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}

// openStore builds the persistence backend selected by STORE_DRIVER.
// sqlite and postgres go through gorm; file is the single-user local
// JSON document.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "file":
		return filestore.Open(cfg.Store.FilePath)
	case "sqlite", "postgres":
		conn, err := db.Connect(cfg.Store)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(conn, cfg.Store, cfg.App.Migrations); err != nil {
			return nil, err
		}
		return gormstore.New(conn), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
