package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foodordering/food-server-go/internal/config"
	"github.com/foodordering/food-server-go/internal/database"
	"github.com/foodordering/food-server-go/internal/handler"
	"github.com/foodordering/food-server-go/internal/metrics"
	"github.com/foodordering/food-server-go/internal/redis"
	"github.com/foodordering/food-server-go/internal/repository"
	"github.com/foodordering/food-server-go/internal/service"
	"github.com/foodordering/food-server-go/internal/util"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(cfg.IsProduction()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.AutoMigrate {
		if err := migrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), config.DBPingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	customerRepo := repository.NewCustomerRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)
	addressRepo := repository.NewAddressRepository(db.DB)

	cipher := util.NewPasswordCipher(cfg.PasswordHashIterations)
	issuer := util.NewAccessTokenIssuer(cfg.TokenIssuer)

	authService := service.NewAuthService(db, customerRepo, sessionRepo, cipher, issuer)
	customerService := service.NewCustomerService(db, customerRepo, authService, cipher)
	addressService := service.NewAddressService(db, addressRepo)

	router := newRouter(routerDeps{
		cfg:             cfg,
		authService:     authService,
		customerService: customerService,
		addressService:  addressService,
		rateLimiter:     service.NewRateLimiter(redisClient.Client),
		registry:        metrics.NewRegistry(),
		healthChecks: map[string]handler.HealthCheck{
			"database": db.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerRequestTimeout + config.ServerReadTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-sigCtx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}

func migrateUp(databaseURL string) error {
	m, err := database.NewMigrator(databaseURL)
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		return err
	}

	version, _, err := m.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Msg("database migrations applied")
	return nil
}
