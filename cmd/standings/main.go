package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"fastcountdown/internal/adapter/repo"
	"fastcountdown/internal/deadline"
	"fastcountdown/internal/infra"
	"fastcountdown/internal/leaderboard"
	"fastcountdown/internal/money"
)

// standings prints the current deadline and the top donors straight from the
// database, for operators without HTTP access.
func main() {
	var limitFlag int
	flag.IntVar(&limitFlag, "limit", 10, "number of donors to print (<=0 prints all)")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}
	campaign, err := infra.LoadCampaign()
	if err != nil {
		exitWithError(fmt.Errorf("failed to load campaign: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli", "standings")
	repos := repo.NewStore(infra.NewSQLRunner(pool, logger)).Repositories()

	status, err := deadline.NewEngine(repos.Fast, campaign, nil).Status(ctx)
	if err != nil {
		exitWithError(err)
	}
	top, err := leaderboard.NewAggregator(repos.Donors).Top(ctx, limitFlag)
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("fast ends %s (extra %s of %s minutes", status.FastEnd.UTC().Format(time.RFC3339), status.ExtraMinutes, status.MaxExtraMinutes)
	if status.Capped {
		fmt.Print(", capped")
	}
	fmt.Println(")")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tdonor\ttotal\t")
	for i, rec := range top {
		fmt.Fprintf(w, "%d\t%s\t%s\t\n", i+1, rec.DonorName, money.Fixed(rec.TotalDonation))
	}
	_ = w.Flush()
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
