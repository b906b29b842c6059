package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Allahviranloo/Ramble/api/repositories"
	"github.com/Allahviranloo/Ramble/api/router"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	// Wait up to ~60s for the database to come up.
	if err := waitForDB(db, 60*time.Second); err != nil {
		log.Fatal().Err(err).Msg("cannot ping database after retries")
	}
	log.Info().Msg("connected to PostgreSQL")

	if err := migrate(db, "sql"); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)

	port := getEnv("PORT", "5000")
	log.Info().Str("port", port).Msg("server running")
	if err := http.ListenAndServe(":"+port, router.CreateRouter(userRepo, postRepo)); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func waitForDB(db *sql.DB, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := db.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database not reachable: %w", err)
		}
		time.Sleep(2 * time.Second)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
