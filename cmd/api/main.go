package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"fastcountdown/internal/adapter/repo"
	"fastcountdown/internal/deadline"
	"fastcountdown/internal/domain"
	"fastcountdown/internal/donation"
	"fastcountdown/internal/events"
	"fastcountdown/internal/http/handlers"
	httpapi "fastcountdown/internal/http/httpapi"
	"fastcountdown/internal/infra"
	"fastcountdown/internal/leaderboard"
	"fastcountdown/internal/money"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")
	clock := clockwork.NewRealClock()
	ctx := context.Background()

	var uow domain.UnitOfWork
	switch cfg.StoreDriver {
	case infra.StoreDriverMemory:
		logger.Warn().Msg("using in-memory store; state is lost on restart")
		uow = repo.NewMemoryStore(clock)
	default:
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		uow = repo.NewStore(infra.NewSQLRunner(dbpool, logger))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		nats, err := events.ConnectNATS(cfg.NATSURL, cfg.EventSubject, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect NATS")
		}
		defer func() {
			if err := nats.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to drain NATS")
			}
		}()
		publisher = nats
	}

	formatter, err := money.NewFormatter(cfg.Currency)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid donation currency")
	}

	repos := uow.Repositories()
	app := handlers.NewApp(
		deadline.NewEngine(repos.Fast, cfg.Campaign, clock),
		leaderboard.NewAggregator(repos.Donors),
		donation.NewProcessor(uow, cfg.Campaign, clock, publisher, logger),
		formatter,
		logger,
	)

	router := httpapi.NewRouter(app, httpapi.Options{
		ConfirmSecret:   cfg.ConfirmSecret,
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Clock:           clock,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("store", cfg.StoreDriver).
			Time("fast_start", cfg.Campaign.Start).
			Time("fast_max_end", cfg.Campaign.MaxEnd()).
			Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
