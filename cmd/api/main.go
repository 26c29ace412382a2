package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-records-access/internal/adapters/auth/jwtauth"
	"health-records-access/internal/adapters/identity/registry"
	mg "health-records-access/internal/adapters/storage/mongo"
	pg "health-records-access/internal/adapters/storage/postgres"
	"health-records-access/internal/config"
	"health-records-access/internal/domain/accessgrants"
	"health-records-access/internal/platform/logger"
	"health-records-access/internal/ports/identity"
	"health-records-access/internal/router"

	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/mongo"
)

// @title Health Records Access API
// @version 1.0
// @description Ciclo de vida de los grants de acceso paciente -> provider.
// @BasePath /
func main() {
	configPath := pflag.String("config", os.Getenv("CONFIG_FILE"), "ruta al config YAML (opcional)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := accessgrants.ParseRevokePolicy(cfg.RevokePolicy)
	if err != nil {
		return err
	}

	opts := router.Options{
		Logger:       log,
		RevokePolicy: policy,
		EnforceRoles: cfg.Identity.EnforceRoles,
		RateLimit:    router.RateLimit{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst},
		CORSOrigins:  cfg.CORS.AllowedOrigins,
	}

	// Storage
	switch cfg.StoreDriver() {
	case config.StorePostgres:
		db, err := pg.Open(cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer closeDB(db, log)
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		opts.DB = db
	case config.StoreMongo:
		client, database, err := mg.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return err
		}
		defer disconnectMongo(client, log)
		repo := mg.NewAccessGrantsRepo(database.Collection(mg.GrantsCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		opts.Grants = repo
	}
	log.Info("storage ready", map[string]any{"driver": cfg.StoreDriver()})

	// Identidad del caller
	if cfg.Auth.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
		if err != nil {
			return err
		}
		opts.AuthVerifier = v
	} else {
		log.Warn("no AUTH_JWT_SECRET: caller identity comes from the dev header", nil)
	}

	// Registro de roles/perfiles
	if reg, err := newRegistry(cfg.Identity); err == nil {
		opts.Registry = reg
	} else if !errors.Is(err, registry.ErrRegistryNotConfigured) {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":          srv.Addr,
			"revoke_policy": string(policy),
			"jwt":           opts.AuthVerifier != nil,
			"registry":      opts.Registry != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRegistry(cfg config.IdentityConfig) (identity.Registry, error) {
	c, err := registry.NewClient(registry.Config{
		BaseURL: cfg.RegistryURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func closeDB(db *sql.DB, log logger.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("close postgres", map[string]any{"err": err.Error()})
	}
}

func disconnectMongo(c *mongo.Client, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Disconnect(ctx); err != nil {
		log.Warn("disconnect mongo", map[string]any{"err": err.Error()})
	}
}
