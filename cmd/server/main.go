package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/imparlab/impar/internal/api"
	"github.com/imparlab/impar/internal/middleware"
	"github.com/imparlab/impar/internal/services"
	"github.com/imparlab/impar/internal/store"
	"github.com/imparlab/impar/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	addr := utils.SafeEnv("IMPAR_ADDR", ":8080")

	st, closeStore, err := openStore()
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	if err := seedOwner(st); err != nil {
		log.Fatalf("owner seed: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(st).Register(mux)

	// Optional static frontend (fullstack image).
	if staticDir := os.Getenv("IMPAR_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.CORS(middleware.NoStore(middleware.WithAuth(mux)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("impar server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openStore picks sqlite when IMPAR_DB_PATH is set, otherwise an in-memory
// store that loses everything on restart.
func openStore() (store.Store, func(), error) {
	path := os.Getenv("IMPAR_DB_PATH")
	if path == "" {
		log.Printf("IMPAR_DB_PATH not set, using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Printf("using sqlite store at %s", path)
	return st, func() { db.Close() }, nil
}

// seedOwner provisions the single owner account from the environment. The
// API has no path to the owner role, so this is the only way to create one.
func seedOwner(st store.Store) error {
	email := os.Getenv("IMPAR_OWNER_EMAIL")
	password := os.Getenv("IMPAR_OWNER_PASSWORD")
	if email == "" || password == "" {
		log.Printf("IMPAR_OWNER_EMAIL/IMPAR_OWNER_PASSWORD not set, skipping owner seed")
		return nil
	}
	auth := services.NewAuthService(st, middleware.SignToken)
	return auth.EnsureOwner(email, password, "Owner")
}
