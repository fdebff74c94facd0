package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/Aditya-Sharma03/spendwise/internal/adapter/http"
	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/handler"
	apimiddleware "github.com/Aditya-Sharma03/spendwise/internal/adapter/http/middleware"
	"github.com/Aditya-Sharma03/spendwise/internal/adapter/repository/memory"
	postgresRepo "github.com/Aditya-Sharma03/spendwise/internal/adapter/repository/postgres"
	redisRepo "github.com/Aditya-Sharma03/spendwise/internal/adapter/repository/redis"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/auth"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/config"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/eventpublisher"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/idgen"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/lock"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/postgres"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/redis"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// app is the fully wired service.
type app struct {
	handler     http.Handler
	rateLimiter *apimiddleware.RateLimiter
	closers     []func()
}

// Close releases connections in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	txManager usecase.TransactionManager
	wallets   usecase.WalletRepository
	txs       usecase.TransactionRepository
	transfers usecase.TransferRepository
	balances  usecase.MonthlyBalanceRepository
	dues      usecase.DueRepository
}

func newApp(ctx context.Context, cfg *config.Config, lg zerolog.Logger) (*app, error) {
	a := &app{}
	built := false
	defer func() {
		if !built {
			a.Close()
		}
	}()

	health := handler.NewHealthHandler()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.AutoMigrate {
			if err := postgres.RunMigrations(cfg.DatabaseURL, lg); err != nil {
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		health.WithCheck("postgres", pool)
		lg.Info().Msg("connected to postgres")

		repos = repositories{
			txManager: postgresRepo.NewTxManager(pool),
			wallets:   postgresRepo.NewWalletRepository(pool),
			txs:       postgresRepo.NewTransactionRepository(pool),
			transfers: postgresRepo.NewTransferRepository(pool),
			balances:  postgresRepo.NewMonthlyBalanceRepository(pool, postgresRepo.NewRetrier(lg)),
			dues:      postgresRepo.NewDueRepository(pool),
		}
	default:
		store := memory.New()
		repos = repositories{
			txManager: store.TxManager(),
			wallets:   store.Wallets(),
			txs:       store.Transactions(),
			transfers: store.Transfers(),
			balances:  store.MonthlyBalances(),
			dues:      store.Dues(),
		}
		lg.Warn().Msg("using in-memory storage; data is lost on restart")
	}

	var (
		redisClient *goredis.Client
		idemStore   usecase.IdempotencyStore
		locker      usecase.WalletLocker = lock.NewLocal()
	)
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		health.WithCheck("redis", handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
		lg.Info().Msg("connected to redis")

		repos.balances = redisRepo.NewBalanceCache(repos.balances, redisClient, cfg.BalanceCacheTTL, m, lg)
		idemStore = redisRepo.NewIdempotencyStore(redisClient)
		if cfg.LockDriver == config.LockRedis {
			locker = redisRepo.NewWalletLocker(redisClient, cfg.LockTTL)
		}
	}

	publisher, closePublisher, err := newPublisher(cfg, lg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closePublisher)

	ids := idgen.NewULIDGenerator()

	ledger := usecase.NewLedgerUseCase(repos.balances, repos.txs, locker, usecase.LedgerConfig{
		Publisher:    publisher,
		IDGen:        ids,
		Metrics:      m,
		Logger:       lg,
		CascadeLimit: cfg.CascadeMaxMonths,
	})
	walletUC := usecase.NewWalletUseCase(repos.wallets, ledger, ids, publisher, lg)
	transactionUC := usecase.NewTransactionUseCase(repos.txManager, repos.wallets, repos.txs, repos.transfers,
		ledger, ids, publisher, m, lg)
	dueUC := usecase.NewDueUseCase(repos.txManager, repos.wallets, repos.dues, repos.txs,
		ledger, ids, publisher, m, lg)
	insightUC := usecase.NewInsightUseCase(repos.wallets, repos.txs, repos.balances, ledger, cfg.BurnRateWindowMonths)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = apimiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:      handler.NewWalletHandler(walletUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		DueHandler:         handler.NewDueHandler(dueUC),
		InsightHandler:     handler.NewInsightHandler(insightUC),
		HealthHandler:      health,
		JWTManager:         jwtManager,
		IdempotencyStore:   idemStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        a.rateLimiter,
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Logger:             lg,
	})

	built = true
	return a, nil
}

// newPublisher returns the event publisher behind a circuit breaker: AMQP
// when AMQP_URL is set, the log publisher otherwise.
func newPublisher(cfg *config.Config, lg zerolog.Logger) (usecase.EventPublisher, func(), error) {
	var (
		next    eventpublisher.Publisher = eventpublisher.NewLogPublisher(lg)
		closeFn                          = func() {}
	)

	if cfg.AMQPURL != "" {
		amqpPub, err := eventpublisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, lg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to amqp: %w", err)
		}
		next = amqpPub
		closeFn = func() { _ = amqpPub.Close() }
		lg.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing events to amqp")
	}

	breaker := eventpublisher.NewBreakerPublisher(next, eventpublisher.BreakerConfig{
		Name:        "ledger-events",
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenInterval,
	}, lg)

	return breaker, closeFn, nil
}
