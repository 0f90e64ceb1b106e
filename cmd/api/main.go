package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaughan-dsouza/yatube/internal/config"
	"github.com/vaughan-dsouza/yatube/internal/db"
	"github.com/vaughan-dsouza/yatube/internal/handlers"
	"github.com/vaughan-dsouza/yatube/internal/store"
	"github.com/vaughan-dsouza/yatube/internal/utils"
)

func main() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		errorLog.Fatal(err)
	}

	ttl, err := utils.ParseTTL(cfg.SessionTTL)
	if err != nil {
		errorLog.Fatalf("SESSION_TTL: %v", err)
	}

	dbConn, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL, db.Options{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		errorLog.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		errorLog.Fatalf("db migrate: %v", err)
	}
	infoLog.Printf("database ready (%s)", cfg.DatabaseDriver)

	h, err := handlers.NewHandler(store.New(dbConn), handlers.Options{
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    ttl,
		CookieSecure:  cfg.CookieSecure,
		InfoLog:       infoLog,
		ErrorLog:      errorLog,
	})
	if err != nil {
		errorLog.Fatalf("handlers: %v", err)
	}

	srv := &http.Server{
		Addr:     ":" + cfg.Port,
		Handler:  h.Routes(),
		ErrorLog: errorLog,

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		infoLog.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLog.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	infoLog.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		errorLog.Fatalf("server forced to shutdown: %v", err)
	}

	infoLog.Println("server exited")
}
