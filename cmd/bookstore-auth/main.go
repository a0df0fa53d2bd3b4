// Command bookstore-auth serves login, sessions and account administration
// for the bookstore catalog.
//
//	@title						Bookstore Account API
//	@version					1.0
//	@description				Login, sessions and account administration for the bookstore catalog.
//	@BasePath					/
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						BookStoreAuth
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/api"
	"github.com/bookstore/catalog-system/internal/api/handler"
	"github.com/bookstore/catalog-system/internal/api/middleware"
	"github.com/bookstore/catalog-system/internal/core/ports"
	"github.com/bookstore/catalog-system/internal/core/service"
	"github.com/bookstore/catalog-system/internal/infrastructure/db/memory"
	mongostore "github.com/bookstore/catalog-system/internal/infrastructure/db/mongo"
	"github.com/bookstore/catalog-system/internal/infrastructure/db/postgres"
	rediscache "github.com/bookstore/catalog-system/internal/infrastructure/db/redis"
	"github.com/bookstore/catalog-system/internal/pkg/config"
	"github.com/bookstore/catalog-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// stores bundles the persistence adapters selected by configuration.
type stores struct {
	accounts ports.AccountRepository
	roles    ports.RoleRepository
	cache    ports.RoleNameCache
	checks   []handler.DependencyCheck
	closers  []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "bookstore-auth",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("bookstore-auth stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	hasher := service.NewBcryptHasher(cfg.Session.BcryptCost)
	names := service.NewRoleDirectory(st.roles, st.cache, cfg.Redis.RoleTTL, logger.Component("roles"))
	accounts := service.NewAccountService(st.accounts, st.roles, names, hasher, logger.Component("accounts"))
	roles := service.NewRoleService(st.roles, st.accounts, names, logger.Component("roles"))
	auth := service.NewAuthService(st.accounts, names, hasher, logger.Component("auth"))
	sessions := service.NewSessionIssuer(cfg.Session.JWTSecret, cfg.Session.TTL)
	renewer := service.NewSessionRenewer(sessions, st.accounts, names, logger.Component("sessions"))

	if cfg.Bootstrap.Username != "" {
		created, err := accounts.Bootstrap(ctx, cfg.Bootstrap.Role, cfg.Bootstrap.Username, cfg.Bootstrap.Password)
		if err != nil {
			return fmt.Errorf("bootstrap administrator: %w", err)
		}
		if !created {
			log.Debug().Msg("accounts present, bootstrap skipped")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Auth:     auth,
		Accounts: accounts,
		Roles:    roles,
		Sessions: sessions,
		Renewer:  renewer,
		Cookie: middleware.Cookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		Checks: st.checks,
		Logger: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		st.accounts = postgres.NewAccountRepository(pool)
		st.roles = postgres.NewRoleRepository(pool)
		st.checks = append(st.checks, handler.DependencyCheck{Name: "postgres", Ping: pool.Ping})
		st.closers = append(st.closers, pool.Close)

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		st.accounts = mongostore.NewAccountRepository(db)
		st.roles = mongostore.NewRoleRepository(db)
		st.checks = append(st.checks, handler.DependencyCheck{
			Name: "mongodb",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		})
		st.closers = append(st.closers, func() { _ = client.Disconnect(context.Background()) })

	default:
		log.Warn().Msg("using in-memory store, accounts are lost on restart")
		mem := memory.New()
		st.accounts = mem.Accounts()
		st.roles = mem.Roles()
	}

	if cfg.Redis.Addr != "" {
		rdb, err := rediscache.Connect(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			st.close()
			return nil, err
		}
		st.cache = rediscache.NewRoleCache(rdb)
		st.checks = append(st.checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		st.closers = append(st.closers, func() { _ = rdb.Close() })
	}

	return st, nil
}
