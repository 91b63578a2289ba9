package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/deeds"
	"github.com/aretw0/deeds/internal/adapters/badger"
	"github.com/aretw0/deeds/internal/adapters/file"
	"github.com/aretw0/deeds/internal/adapters/sqlite"
	"github.com/aretw0/deeds/internal/config"
	"github.com/aretw0/deeds/pkg/adapters/memory"
	redisadapter "github.com/aretw0/deeds/pkg/adapters/redis"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/persistence/middleware"
	"github.com/aretw0/deeds/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Stores holds the persistence adapters selected by configuration.
type Stores struct {
	Sessions  ports.SessionStore
	Questions ports.QuestionStore
	// Locker is set when sessions live in Redis and may be shared by several processes.
	Locker ports.DistributedLocker

	closers []func() error
}

// Close releases every store that holds a connection or a file lock.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenStores creates the session and question stores named by cfg.
func OpenStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stores, error) {
	s := &Stores{}

	var client *backend.Client
	prefix := cfg.Redis.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	if cfg.UsesRedis() {
		client = backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, client.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
	}

	switch cfg.Sessions.Driver {
	case config.DriverMemory:
		s.Sessions = memory.NewStore()
	case config.DriverFile:
		s.Sessions = file.New(cfg.Sessions.Path)
	case config.DriverRedis:
		s.Sessions = redisadapter.NewFromClient(client,
			redisadapter.WithPrefix(prefix),
			redisadapter.WithTTL(cfg.Redis.TTL),
		)
		s.Locker = redisadapter.NewLocker(client, prefix)
	default:
		s.Close()
		return nil, fmt.Errorf("unknown sessions driver %q", cfg.Sessions.Driver)
	}

	switch cfg.Questions.Driver {
	case config.DriverMemory:
		s.Questions = memory.NewQuestionStore()
	case config.DriverFile:
		s.Questions = file.NewQuestionStore(cfg.Questions.Path)
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Questions.Path)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Questions = store
		s.closers = append(s.closers, store.Close)
	case config.DriverBadger:
		store, err := badger.Open(cfg.Questions.Path, logger)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Questions = store
		s.closers = append(s.closers, store.Close)
	case config.DriverRedis:
		s.Questions = redisadapter.NewQuestionStore(client, prefix)
	default:
		s.Close()
		return nil, fmt.Errorf("unknown questions driver %q", cfg.Questions.Driver)
	}

	if err := s.protect(cfg.Privacy); err != nil {
		s.Close()
		return nil, err
	}

	logger.Debug("stores opened", "sessions", cfg.Sessions.Driver, "questions", cfg.Questions.Driver)
	return s, nil
}

// protect wraps the stores with the privacy middlewares that are configured.
func (s *Stores) protect(cfg config.PrivacyConfig) error {
	if cfg.EncryptionKey != "" {
		active, err := middleware.ParseKey(cfg.EncryptionKey)
		if err != nil {
			return fmt.Errorf("privacy.encryption_key: %w", err)
		}
		enc := middleware.EncryptionConfig{ActiveKey: active}
		for i, k := range cfg.FallbackKeys {
			key, err := middleware.ParseKey(k)
			if err != nil {
				return fmt.Errorf("privacy.fallback_keys[%d]: %w", i, err)
			}
			enc.FallbackKeys = append(enc.FallbackKeys, key)
		}
		mw, err := middleware.NewEncryptionMiddleware(enc)
		if err != nil {
			return err
		}
		s.Sessions = mw(s.Sessions)
	}

	if len(cfg.Redact) > 0 {
		mw, err := middleware.NewPIIMiddleware(cfg.Redact)
		if err != nil {
			return fmt.Errorf("privacy.redact: %w", err)
		}
		s.Questions = mw(s.Questions)
	}
	return nil
}

// NewEngine builds the facade over the configured document and stores.
func NewEngine(cfg *config.Config, logger *slog.Logger, stores *Stores, hooks ...domain.Hooks) (*deeds.Engine, error) {
	if err := cfg.RequireDocument(); err != nil {
		return nil, err
	}

	opts := []deeds.Option{
		deeds.WithLogger(logger),
		deeds.WithSessionStore(stores.Sessions),
		deeds.WithQuestionStore(stores.Questions),
		deeds.WithMessages(cfg.Messages),
		deeds.WithHooks(domain.MergeHooks(append([]domain.Hooks{debugHooks(logger)}, hooks...)...)),
	}
	if stores.Locker != nil {
		opts = append(opts, deeds.WithLocker(stores.Locker))
	}

	engine, err := deeds.New(cfg.Document.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
