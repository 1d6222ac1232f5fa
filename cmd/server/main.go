package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcatalog "github.com/farmstock/backend/internal/application/catalog"
	appevent "github.com/farmstock/backend/internal/application/event"
	appidentity "github.com/farmstock/backend/internal/application/identity"
	appinventory "github.com/farmstock/backend/internal/application/inventory"
	appmedication "github.com/farmstock/backend/internal/application/medication"
	apppartner "github.com/farmstock/backend/internal/application/partner"
	apprequisition "github.com/farmstock/backend/internal/application/requisition"
	"github.com/farmstock/backend/internal/infrastructure/auth"
	"github.com/farmstock/backend/internal/infrastructure/config"
	"github.com/farmstock/backend/internal/infrastructure/event"
	"github.com/farmstock/backend/internal/infrastructure/logger"
	"github.com/farmstock/backend/internal/infrastructure/persistence"
	"github.com/farmstock/backend/internal/infrastructure/telemetry"
	"github.com/farmstock/backend/internal/interfaces/http/handler"
	"github.com/farmstock/backend/internal/interfaces/http/router"
	"github.com/farmstock/backend/internal/interfaces/ws"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer logger.Sync(log)

	log.Info("starting farmstock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, cfg.Log.Level))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database ready")

	// Token blacklist backed by redis, with an in-process fallback so the
	// service still starts when redis is down. Blacklisted tokens then only
	// stay revoked per instance until redis is back.
	blacklist := buildTokenBlacklist(cfg, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Event plumbing: serializer, transactional outbox, in-memory bus
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)

	outboxPublisher := event.NewOutboxPublisher(serializer)
	outboxPublisher.SetMaxRetries(cfg.Event.MaxRetries)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormStockCategoryRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	siteRepo := persistence.NewGormSiteRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	recordRepo := persistence.NewGormMedicationRecordRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	requestRepo := persistence.NewGormStockRequestRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	stockItemRepo.SetOutboxEventSaver(outboxPublisher)
	requestRepo.SetOutboxEventSaver(outboxPublisher)

	txScope := persistence.NewGormTransactionScope(db.DB)
	txScope.SetOutboxEventSaver(outboxPublisher)

	// Application services
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := appidentity.NewUserService(userRepo, log)
	categoryService := appcatalog.NewCategoryService(categoryRepo, stockItemRepo)
	storeService := apppartner.NewStoreService(storeRepo, stockItemRepo)
	siteService := apppartner.NewSiteService(siteRepo, requestRepo)
	clientService := apppartner.NewClientService(clientRepo)
	recordService := appmedication.NewRecordService(recordRepo)
	stockItemService := appinventory.NewStockItemService(stockItemRepo, requestRepo)
	requestService := apprequisition.NewStockRequestService(requestRepo, stockItemRepo, txScope)
	outboxService := appevent.NewOutboxService(outboxRepo, log)

	// Event bus and subscribers. Each subscriber is wrapped for idempotency
	// because events reach the bus twice: once directly from the publishing
	// service and once from the outbox replay.
	eventBus := event.NewInMemoryEventBus(log)

	dedupStore := event.NewInMemoryIdempotencyStore()
	defer func() {
		if err := dedupStore.Close(); err != nil {
			log.Error("error closing idempotency store", zap.Error(err))
		}
	}()

	hub := ws.NewHub(log)
	eventBus.Subscribe(event.NewIdempotentHandler("ws-broadcaster", ws.NewBroadcaster(hub, log), dedupStore, log))
	eventBus.Subscribe(event.NewIdempotentHandler("low-stock", appinventory.NewLowStockHandler(log, hub), dedupStore, log))

	// Tracing and metrics (no-op providers when telemetry is disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize tracer provider", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("failed to register database tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize meter provider", zap.Error(err))
	}
	stockMetrics, err := telemetry.NewStockMetrics(meterProvider, log)
	if err != nil {
		log.Fatal("failed to create stock metrics", zap.Error(err))
	}
	eventBus.Subscribe(event.NewIdempotentHandler("stock-metrics", stockMetrics, dedupStore, log))

	categoryService.SetEventPublisher(eventBus)
	storeService.SetEventPublisher(eventBus)
	siteService.SetEventPublisher(eventBus)
	clientService.SetEventPublisher(eventBus)
	recordService.SetEventPublisher(eventBus)
	stockItemService.SetEventPublisher(eventBus)
	requestService.SetEventPublisher(eventBus)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("error stopping event bus", zap.Error(err))
		}
	}()

	// Outbox processor replays persisted events onto the bus
	var outboxProcessor *event.OutboxProcessor
	if cfg.Event.ProcessorEnabled {
		processorCfg := event.DefaultOutboxProcessorConfig()
		if cfg.Event.BatchSize > 0 {
			processorCfg.BatchSize = cfg.Event.BatchSize
		}
		if cfg.Event.PollInterval > 0 {
			processorCfg.PollInterval = cfg.Event.PollInterval
		}
		processorCfg.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			processorCfg.CleanupRetention = cfg.Event.CleanupRetention
		}

		outboxProcessor = event.NewOutboxProcessor(outboxRepo, eventBus, serializer, processorCfg, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("failed to start outbox processor", zap.Error(err))
		}
		log.Info("outbox processor started",
			zap.Int("batch_size", processorCfg.BatchSize),
			zap.Duration("poll_interval", processorCfg.PollInterval),
		)
	}

	wsHandler := ws.NewHandler(hub, jwtService, log)

	var extraMiddleware []gin.HandlerFunc
	if cfg.Telemetry.Enabled {
		extraMiddleware = append(extraMiddleware, otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine := router.New(router.Config{
		AppConfig:      cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Handlers: router.Handlers{
			Auth:             handler.NewAuthHandler(authService),
			User:             handler.NewUserHandler(userService),
			StockRequest:     handler.NewStockRequestHandler(requestService),
			StockItem:        handler.NewStockItemHandler(stockItemService),
			Category:         handler.NewCategoryHandler(categoryService),
			Store:            handler.NewStoreHandler(storeService),
			Site:             handler.NewSiteHandler(siteService),
			Client:           handler.NewClientHandler(clientService),
			MedicationRecord: handler.NewMedicationRecordHandler(recordService),
			Outbox:           handler.NewOutboxHandler(outboxService),
			System:           handler.NewSystemHandler(db, version),
		},
		WebSocketHandler: wsHandler.ServeWS,
		ExtraMiddleware:  extraMiddleware,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if outboxProcessor != nil {
		if err := outboxProcessor.Stop(ctx); err != nil {
			log.Error("error stopping outbox processor", zap.Error(err))
		}
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Error("error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("error shutting down tracer provider", zap.Error(err))
	}

	log.Info("server exited gracefully")
}

func buildTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, falling back to in-memory token blacklist",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}

	log.Info("redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	return auth.NewRedisTokenBlacklist(client)
}
