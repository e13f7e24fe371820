package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"fastcountdown/internal/infra"
	"fastcountdown/internal/sqlinline"
)

func main() {
	var (
		dsnFlag     string
		timeoutFlag time.Duration
	)
	flag.StringVar(&dsnFlag, "dsn", "", "PostgreSQL connection string (fallbacks to DATABASE_URL)")
	flag.DurationVar(&timeoutFlag, "timeout", 30*time.Second, "time allowed for the migration")
	flag.Parse()

	_ = godotenv.Load()

	dsn := strings.TrimSpace(dsnFlag)
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dsn == "" {
		exitWithError(errors.New("DATABASE_URL is required via -dsn or environment"))
	}

	logger := infra.NewLogger(os.Getenv("APP_ENV"), "migrate")

	marker, schema, err := infra.ExtractMarker(sqlinline.QCreateSchema)
	if err != nil {
		exitWithError(fmt.Errorf("schema statement: %w", err))
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		exitWithError(fmt.Errorf("failed to open database connection: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		exitWithError(fmt.Errorf("failed to ping database: %w", err))
	}

	logger.Info().Str("marker", marker).Msg("applying schema")
	if _, err := db.ExecContext(ctx, schema); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			logger.Error().
				Str("code", string(pqErr.Code)).
				Str("detail", pqErr.Detail).
				Str("table", pqErr.Table).
				Msg(pqErr.Message)
		}
		exitWithError(fmt.Errorf("failed to apply schema: %w", err))
	}
	logger.Info().Msg("schema up to date")
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
