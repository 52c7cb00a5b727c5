package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/gql"
	"taskdeck.org/internal/httpapi"
	"taskdeck.org/internal/identity"
	"taskdeck.org/internal/obs"
	"taskdeck.org/internal/task"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	secret := os.Getenv("TASKDECK_AUTH_SECRET")
	if secret == "" {
		log.Fatal("missing TASKDECK_AUTH_SECRET")
	}
	verifier, err := auth.NewHS256Verifier([]byte(secret))
	if err != nil {
		log.Fatalf("configure verifier: %v", err)
	}

	// Storage: Postgres when a DSN is configured, in-memory otherwise.
	var (
		db        *sql.DB
		userStore identity.Store
		taskStore task.Store
	)
	if dsn := os.Getenv("TASKDECK_PG_DSN"); dsn != "" {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		userStore = identity.NewPGStore(db)
		taskStore = task.NewPGStore(db)
	} else {
		log.Println("TASKDECK_PG_DSN not set, using in-memory stores")
		userStore = identity.NewInMemory()
		taskStore = task.NewInMemory()
	}

	sessions := identity.NewResolver(verifier, userStore)
	services := &gql.RequestContext{
		Users: identity.NewService(sessions, userStore),
		Tasks: task.NewService(sessions, taskStore),
	}

	schema, err := gql.NewSchema()
	if err != nil {
		log.Fatalf("build schema: %v", err)
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, schema, services)

	addr := os.Getenv("TASKDECK_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting taskdeck-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
