package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/RajevHacker/codespark-invoice-wizard/auth"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/config"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/db"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/handlers"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
	"github.com/RajevHacker/codespark-invoice-wizard/view"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run session store migrations and exit")
	templatesFlag   = flag.String("templates", "", "Read templates from this directory instead of the embedded copy")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	auth.SetSecret(cfg.App.SessionSecret)
	if cfg.App.Dev && cfg.App.SessionSecret == "devsessionsecret" {
		log.Println("warning: using the development session secret")
	}
	view.SetBaseDir(*templatesFlag)

	dbConn, err := db.Connect(cfg.Database, db.Options{SQLMigrations: cfg.App.Migrations, Retries: 5})
	if err != nil {
		log.Fatalf("Failed to connect to session store: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}

	api := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	routerCfg := handlers.NewRouterConfig(api, session.NewGormStore(dbConn), cfg.Suggest)
	appHandler := NewApp(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      appHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (dev=%v, backend=%s)", cfg.Server.Port, cfg.App.Dev, api.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped gracefully")
}
