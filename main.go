package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/onionfightclub-arch/neon-cyber-store/config"
	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/insight"
	"github.com/onionfightclub-arch/neon-cyber-store/services/storefront"
)

const sweepInterval = time.Minute

func main() {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{}
	log.Out = os.Stdout

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.Level = cfg.LogLevel

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	catalog, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	var gen insight.Generator
	if cfg.APIKey != "" {
		genai, err := insight.NewGenAIGenerator(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			closeStore()
			return errors.Wrap(err, "could not create AI client")
		}
		gen = genai
		log.WithField("model", genai.Model()).Info("AI uplink configured")
	} else {
		log.Warn("no API key set, AI copy falls back to offline text")
	}

	svc := storefront.NewService(catalog, insight.NewClient(gen, log), store, log, cfg.SessionTTL)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(catalog, svc, log, cfg.SecureCookies),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		maintain(ctx, store, svc, sweepInterval, log)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return drain(shutdownCtx, srv, svc, closeStore)
	})
	return g.Wait()
}

type waiter interface {
	Wait()
}

// drain stops srv, waits for background fetches and only then releases the
// session store that both of them write to.
func drain(ctx context.Context, srv *http.Server, fetches waiter, closeStore func() error) error {
	err := srv.Shutdown(ctx)
	fetches.Wait()
	if cerr := closeStore(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "close session store")
	}
	return err
}

type chatPruner interface {
	PruneChats() int
}

// maintain runs periodic cleanup until ctx is done: expired in-memory
// sessions and idle chat widgets.
func maintain(ctx context.Context, store storefront.SessionStore, chats chatPruner, every time.Duration, log logrus.FieldLogger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if mem, ok := store.(*storefront.MemoryStore); ok {
				if n := mem.Sweep(); n > 0 {
					log.WithField("sessions", n).Debug("expired sessions removed")
				}
			}
			if n := chats.PruneChats(); n > 0 {
				log.WithField("chats", n).Debug("idle chats removed")
			}
		}
	}
}

// openCatalog uses Postgres when DATABASE_URL is set. The database is migrated
// and seeded with the built-in catalog on every start.
func openCatalog(cfg config.Config, log logrus.FieldLogger) (storefront.Catalog, error) {
	if cfg.DatabaseURL == "" {
		log.Info("using built-in catalog")
		return models.NewDefaultCatalog(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to database")
	}
	repo := models.NewProductsRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	if err := repo.Seed(models.DefaultProducts(), models.DefaultCategories()); err != nil {
		return nil, err
	}
	log.Info("using postgres catalog")
	return repo, nil
}

// openStore uses Redis when REDIS_ADDR is set, the in-memory store otherwise.
// The returned func releases the store.
func openStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (storefront.SessionStore, func() error, error) {
	if cfg.RedisAddr == "" {
		log.Info("using in-memory session store")
		return storefront.NewMemoryStore(cfg.SessionTTL), func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store, err := storefront.NewRedisStore(ctx, rdb, cfg.SessionTTL)
	if err != nil {
		rdb.Close()
		return nil, nil, err
	}
	log.WithField("addr", cfg.RedisAddr).Info("using redis session store")
	return store, rdb.Close, nil
}
