package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/config"
	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/infra/content"
	"github.com/tgiagency/quote-funnel/internal/infra/crm"
	"github.com/tgiagency/quote-funnel/internal/infra/database"
	"github.com/tgiagency/quote-funnel/internal/infra/http/handlers"
	"github.com/tgiagency/quote-funnel/internal/infra/http/middleware"
	"github.com/tgiagency/quote-funnel/internal/infra/mail"
	"github.com/tgiagency/quote-funnel/internal/infra/notify"
	"github.com/tgiagency/quote-funnel/internal/infra/queue"
	"github.com/tgiagency/quote-funnel/internal/infra/ratelimit"
	"github.com/tgiagency/quote-funnel/internal/infra/stream"
	"github.com/tgiagency/quote-funnel/internal/infra/webhook"
	"github.com/tgiagency/quote-funnel/internal/infra/worker"
	"github.com/tgiagency/quote-funnel/internal/usecase"
)

type postStore interface {
	entity.PostRepositoryInterface
	content.PostSaver
}

// storage bundles the repositories of whichever driver is configured.
type storage struct {
	quotes   entity.QuoteRepositoryInterface
	contacts entity.ContactRepositoryInterface
	posts    postStore
	ping     handlers.Check
	close    func()
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*storage, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := database.MigrateSQLite(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
		}
		logger.Info("using sqlite storage", zap.String("path", cfg.DSN))
		return sqliteStorage(db), nil
	default:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			DSN:      cfg.DSN,
			MaxConns: cfg.MaxOpenConns,
			MinConns: cfg.MinConns,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := database.MigratePostgres(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		logger.Info("using postgres storage")
		return postgresStorage(pool), nil
	}
}

func postgresStorage(pool *pgxpool.Pool) *storage {
	return &storage{
		quotes:   database.NewQuoteRepository(pool),
		contacts: database.NewContactRepository(pool),
		posts:    database.NewPostRepository(pool),
		ping:     pool.Ping,
		close:    pool.Close,
	}
}

func sqliteStorage(db *sql.DB) *storage {
	return &storage{
		quotes:   &database.SQLiteQuoteRepository{DB: db},
		contacts: &database.SQLiteContactRepository{DB: db},
		posts:    &database.SQLitePostRepository{DB: db},
		ping:     db.PingContext,
		close:    func() { _ = db.Close() },
	}
}

// openRateLimitStore returns the shared Redis store or the in-process one with
// its sweeper running.
func openRateLimitStore(ctx context.Context, cfg config.Config, logger *zap.Logger, checks map[string]handlers.Check, closers *[]func()) (entity.RateLimitStore, error) {
	if cfg.RateLimit.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := ratelimit.NewRedisStore(client)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		*closers = append(*closers, func() { _ = client.Close() })
		checks["redis"] = store.Ping
		logger.Info("rate limits shared through redis", zap.String("addr", cfg.Redis.Addr))
		return store, nil
	}

	store := ratelimit.NewMemoryStore()
	sweeper := worker.NewRateLimitSweeper(store, cfg.RateLimit.SweepInterval, logger)
	go sweeper.Start(ctx)
	return store, nil
}

// closableNotifier is what the use cases see plus a drain hook for shutdown.
type closableNotifier interface {
	usecase.QuoteNotifier
	usecase.ContactNotifier
	Close(ctx context.Context) error
}

type syncNotifier struct {
	notify.Notifier
}

func (syncNotifier) Close(context.Context) error { return nil }

// buildNotifier assembles the delivery channels. In queue mode the request
// path only publishes to RabbitMQ and a worker does the fan-out.
func buildNotifier(ctx context.Context, cfg config.Config, logger *zap.Logger, checks map[string]handlers.Check, closers *[]func()) (closableNotifier, error) {
	fanout, err := buildFanout(cfg, logger, closers)
	if err != nil {
		return nil, err
	}

	var front notify.Notifier = fanout
	if cfg.Notify.Mode == "queue" {
		rmq, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = rmq.Close() })
		checks["rabbitmq"] = func(context.Context) error {
			if !rmq.Healthy() {
				return errors.New("connection closed")
			}
			return nil
		}

		consumeCh, err := rmq.Conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("open consumer channel: %w", err)
		}
		w := queue.NewWorker(consumeCh, fanout, fanout, logger)
		go func() {
			if err := w.Start(ctx, queue.QueueName); err != nil {
				logger.Error("notification worker stopped", zap.Error(err))
			}
		}()
		front = queue.NewProducer(rmq.Ch)
	}

	if cfg.Notify.Async {
		return notify.NewAsync(front, cfg.Notify.Timeout, logger), nil
	}
	return syncNotifier{front}, nil
}

func buildFanout(cfg config.Config, logger *zap.Logger, closers *[]func()) (*notify.Fanout, error) {
	sender, err := mail.NewEmailSender(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
		To:       cfg.Mail.To,
	}, logger)
	if err != nil {
		return nil, err
	}
	channels := []notify.Channel{{Name: "email", Quote: sender, Contact: sender}}

	if cfg.Webhook.URL != "" {
		channels = append(channels, notify.Channel{Name: "webhook", Quote: webhook.NewClient(cfg.Webhook.URL, cfg.Webhook.Timeout)})
	}
	if len(cfg.Kafka.Brokers) > 0 {
		pub := stream.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		*closers = append(*closers, func() { _ = pub.Close() })
		channels = append(channels, notify.Channel{Name: "kafka", Quote: pub, Contact: pub})
	}

	if cfg.CRM.Token != "" {
		client := crm.NewClient(crm.Config{
			BaseURL:  cfg.CRM.BaseURL,
			Token:    cfg.CRM.Token,
			StatusID: cfg.CRM.StatusID,
			Timeout:  cfg.CRM.Timeout,
		}, logger)
		channels = append(channels, notify.Channel{Name: "crm", Quote: client, Contact: client})
	}

	fanout := notify.NewFanout(channels, notify.OnFailure(middleware.RecordNotificationFailure))
	logger.Info("notification channels", zap.Strings("channels", fanout.Names()), zap.Bool("email_enabled", sender.Enabled()))
	return fanout, nil
}

// buildContent picks the post source. With the database source, markdown
// found in the content dir is imported first so both stay in step. reload
// rescans the markdown directory.
func buildContent(ctx context.Context, cfg config.ContentConfig, store *storage, logger *zap.Logger) (posts entity.PostRepositoryInterface, reload func(context.Context) error, err error) {
	files := content.NewFileStore(os.DirFS(cfg.Dir), logger)
	if cfg.Source != "database" {
		return files, func(context.Context) error {
			files.Reload()
			return nil
		}, nil
	}

	importFiles := func(ctx context.Context) error {
		if _, err := os.Stat(cfg.Dir); err != nil {
			return nil
		}
		files.Reload()
		n, err := content.Import(ctx, files, store.posts)
		if err != nil {
			return fmt.Errorf("import posts: %w", err)
		}
		logger.Info("posts imported", zap.Int("count", n))
		return nil
	}
	if err := importFiles(ctx); err != nil {
		return nil, nil, err
	}
	return store.posts, importFiles, nil
}
