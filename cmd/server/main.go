package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/fairdice/internal/common/clock"
	"github.com/KirkDiggler/fairdice/internal/common/uuid"
	"github.com/KirkDiggler/fairdice/internal/config"
	"github.com/KirkDiggler/fairdice/internal/dice"
	"github.com/KirkDiggler/fairdice/internal/handlers/discord"
	"github.com/KirkDiggler/fairdice/internal/handlers/http"
	"github.com/KirkDiggler/fairdice/internal/metrics"
	commitmentRepo "github.com/KirkDiggler/fairdice/internal/repositories/commitment"
	ledgerRepo "github.com/KirkDiggler/fairdice/internal/repositories/ledger"
	"github.com/KirkDiggler/fairdice/internal/services/commitment"
	"github.com/KirkDiggler/fairdice/internal/services/ledger"
	"github.com/KirkDiggler/fairdice/internal/services/roll"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fairdice: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.RedisTimeout,
		ReadTimeout:  cfg.RedisTimeout,
		WriteTimeout: cfg.RedisTimeout,
	})
	defer redisClient.Close()

	// Initialize repositories; each pings Redis
	commitmentStore, err := commitmentRepo.NewRedis(&commitmentRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create commitment repository: %w", err)
	}

	ledgerStore, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: redisClient,
		MaxRetries:  cfg.LedgerMaxRetries,
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger repository: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	systemClock := &clock.DefaultClock{}

	// Initialize services
	commitmentSvc, err := commitment.New(&commitment.Config{
		TTL:           cfg.CommitmentTTL,
		Repository:    commitmentStore,
		SeedGenerator: dice.NewSeedGenerator(),
		Clock:         systemClock,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create commitment service: %w", err)
	}

	ledgerSvc, err := ledger.New(&ledger.Config{
		DefaultBalance: cfg.DefaultBalance,
		Repository:     ledgerStore,
		Clock:          systemClock,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger service: %w", err)
	}

	rollSvc, err := roll.New(&roll.Config{
		PayoutMultiplier:   cfg.PayoutMultiplier,
		WinThreshold:       cfg.WinThreshold,
		AutoCreateAccounts: cfg.AutoCreateAccounts,
		CommitmentService:  commitmentSvc,
		LedgerService:      ledgerSvc,
		Clock:              systemClock,
		UUIDGenerator:      uuid.New(),
		Logger:             logger,
		Metrics:            metrics.New(registry),
	})
	if err != nil {
		return fmt.Errorf("failed to create roll service: %w", err)
	}

	router, err := http.NewRouter(&http.Config{
		RollService: rollSvc,
		Logger:      logger,
		Gatherer:    registry,
	})
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	server := &nethttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.DiscordEnabled() {
		bot, err := discord.New(&discord.Config{
			Token:         cfg.DiscordToken,
			ApplicationID: cfg.ApplicationID,
			GuildID:       cfg.GuildID,
			RollService:   rollSvc,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}

		g.Go(func() error {
			if err := bot.Start(); err != nil {
				return err
			}
			<-gctx.Done()
			return bot.Stop()
		})
	} else {
		logger.Info("DISCORD_TOKEN not set, bot disabled")
	}

	err = g.Wait()
	logger.Info("shut down")
	return err
}
