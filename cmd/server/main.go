package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/storefront/internal/adapter/auth"
	"github.com/jcmexdev/storefront/internal/adapter/broker"
	"github.com/jcmexdev/storefront/internal/adapter/cache"
	"github.com/jcmexdev/storefront/internal/adapter/mail"
	"github.com/jcmexdev/storefront/internal/adapter/memory"
	"github.com/jcmexdev/storefront/internal/adapter/similarity"
	"github.com/jcmexdev/storefront/internal/adapter/sqlite"
	"github.com/jcmexdev/storefront/internal/bus"
	"github.com/jcmexdev/storefront/internal/config"
	"github.com/jcmexdev/storefront/internal/core/ports"
	"github.com/jcmexdev/storefront/internal/core/subscriber"
	"github.com/jcmexdev/storefront/internal/core/usecase"
	"github.com/jcmexdev/storefront/internal/infra/httpx"
	"github.com/jcmexdev/storefront/internal/pkg/metrics"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
)

func main() {
	cfg := config.Load()
	log := telemetry.InitLogger("storefront")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.SetupTracer(ctx, "storefront")
		if err != nil {
			log.Error("tracer setup failed", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	// Repositories: SQLite when a path is configured, in-memory otherwise.
	var (
		orders   ports.OrdersRepository
		products ports.ProductsRepository
		users    ports.UsersRepository
	)
	if cfg.Database.Path != "" {
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			log.Error("database open failed", "path", cfg.Database.Path, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		orders = sqlite.NewOrdersRepository(db)
		products = sqlite.NewProductsRepository(db)
		users = sqlite.NewUsersRepository(db)
		log.Info("using sqlite repositories", "path", cfg.Database.Path)
	} else {
		orders = memory.NewOrdersRepository()
		products = memory.NewProductsRepository()
		users = memory.NewUsersRepository()
		log.Warn("using in-memory repositories; data is lost on restart")
	}

	events := bus.NewManager(log)

	// E-mail: real provider when configured, log-only otherwise.
	var sender ports.EmailSender = mail.NewLogSender(log)
	if cfg.Mail.BaseURL != "" {
		sender = mail.NewProviderClient(cfg.Mail.BaseURL, cfg.Mail.APIKey)
	}
	subscriber.NewOrderEmailNotifier(events, sender, log)
	subscriber.NewWelcomeEmailNotifier(events, sender, log)

	kafkaPublisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers)
	if kafkaPublisher.Enabled() {
		defer kafkaPublisher.Close()
		subscriber.NewOrderBrokerPublisher(events, kafkaPublisher, cfg.Kafka.OrderTopic, log)
	}

	var recommend *usecase.Recommend
	if cfg.Similarity.BaseURL != "" {
		similarityClient := similarity.NewClient(cfg.Similarity.BaseURL)
		subscriber.NewSimilarityFeeder(events, similarityClient, log)
		recommend = usecase.NewRecommend(similarityClient, products, log)
	}

	var productCache ports.ProductCache
	if cfg.Redis.Addr != "" {
		productCache = cache.NewShowcaseCache(cfg.Redis.Addr, "storefront", cfg.Redis.TTL)
	}

	hasher := auth.NewBcryptHasher()
	handler := httpx.NewHandler(
		usecase.NewSignUp(users, hasher, events, log),
		usecase.NewSignIn(users, hasher, log),
		usecase.NewCheckout(orders, products, users, events, log),
		usecase.NewOrderQueries(orders),
		usecase.NewCatalog(products, productCache, log),
		recommend,
	)

	srvMetrics := metrics.NewServerMetrics("api")
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpx.NewRouter(handler, srvMetrics),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("storefront listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
