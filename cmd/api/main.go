package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/clock"
	"github.com/tgiagency/quote-funnel/internal/config"
	"github.com/tgiagency/quote-funnel/internal/id"
	"github.com/tgiagency/quote-funnel/internal/infra/http/handlers"
	"github.com/tgiagency/quote-funnel/internal/infra/ratelimit"
	"github.com/tgiagency/quote-funnel/internal/logging"
	"github.com/tgiagency/quote-funnel/internal/usecase"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Optional config file (yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()
	checks := map[string]handlers.Check{}

	// 1. Storage
	store, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	closers = append(closers, store.close)
	checks["database"] = store.ping

	// 2. Rate limiting
	rlStore, err := openRateLimitStore(ctx, cfg, logger, checks, &closers)
	if err != nil {
		return err
	}
	quoteLimiter := ratelimit.NewLimiter(rlStore, cfg.RateLimit.Quote.Limit, cfg.RateLimit.Quote.Window,
		ratelimit.PrefixQuote, ratelimit.WithLogger(logger))
	contactLimiter := ratelimit.NewLimiter(rlStore, cfg.RateLimit.Contact.Limit, cfg.RateLimit.Contact.Window,
		ratelimit.PrefixContact, ratelimit.WithLogger(logger))

	// 3. Notifications
	notifier, err := buildNotifier(ctx, cfg, logger, checks, &closers)
	if err != nil {
		return err
	}

	// 4. Content
	posts, reloadPosts, err := buildContent(ctx, cfg.Content, store, logger)
	if err != nil {
		return err
	}
	go watchReload(ctx, reloadPosts, logger)

	// 5. Use cases and handlers
	quoteUC := usecase.NewSubmitQuoteUseCase(store.quotes, notifier, clock.System{}, id.UUIDv7{}, logger)
	contactUC := usecase.NewSubmitContactUseCase(store.contacts, notifier, clock.System{}, id.UUIDv7{}, logger)

	router := handlers.NewRouter(handlers.RouterDeps{
		Quote:         handlers.NewQuoteHandler(quoteUC, quoteLimiter, logger),
		Contact:       handlers.NewContactHandler(contactUC, contactLimiter, logger),
		Content:       handlers.NewContentHandler(posts, logger),
		Health:        handlers.NewHealthHandler(version, checks),
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		logger.Warn("notifications still pending at shutdown", zap.Error(err))
	}
	return nil
}

// watchReload rescans posts on SIGHUP.
func watchReload(ctx context.Context, reload func(context.Context) error, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := reload(ctx); err != nil {
				logger.Error("post reload failed", zap.Error(err))
				continue
			}
			logger.Info("posts reloaded")
		}
	}
}
