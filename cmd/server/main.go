package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/PShah260898/PRS-FinSight/internal/amfi"
	"github.com/PShah260898/PRS-FinSight/internal/config"
	cronrunner "github.com/PShah260898/PRS-FinSight/internal/cron"
	"github.com/PShah260898/PRS-FinSight/internal/db"
	"github.com/PShah260898/PRS-FinSight/internal/handler"
	"github.com/PShah260898/PRS-FinSight/internal/logger"
	"github.com/PShah260898/PRS-FinSight/internal/marketdata"
	gormrepository "github.com/PShah260898/PRS-FinSight/internal/repository/gorm"
	"github.com/PShah260898/PRS-FinSight/internal/service"
)

func main() {
	cfgPath := os.Getenv("FS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("FS_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	marketHTTP := &http.Client{Timeout: cfg.Market.Timeout}
	marketClient := marketdata.NewClient(marketHTTP, cfg.Market.BaseURL)
	quoteCache := marketdata.NewQuoteCache(marketClient, cfg.Market.CacheTTL)

	amfiHTTP := &http.Client{Timeout: cfg.FundRegistry.Timeout}
	amfiClient := amfi.NewClient(amfiHTTP, cfg.FundRegistry.URL)

	authSvc := &service.AuthService{
		Repo:      store,
		Logger:    logger,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	}
	portfolioSvc := &service.PortfolioService{
		Repo:            store,
		Quotes:          quoteCache,
		Logger:          logger,
		ZeroBasisPolicy: cfg.Holdings.ZeroBasisPolicy,
	}
	registrySvc := &service.RegistrySyncService{
		Repo:      store,
		Client:    amfiClient,
		Logger:    logger,
		BatchSize: cfg.FundRegistry.BatchSize,
	}
	newsSvc := &service.NewsService{
		Feeds:        cfg.News.Feeds,
		Logger:       logger,
		CacheTTL:     cfg.News.CacheTTL,
		PerFeedLimit: cfg.News.PerFeedLimit,
		FeedTimeout:  cfg.News.FeedTimeout,
	}
	inboxSvc := &service.InboxService{Repo: store, Logger: logger}
	catalogSvc := &service.CatalogImportService{Repo: store, Logger: logger}

	if cfg.Catalog.CSVPath != "" {
		if _, err := catalogSvc.ImportFile(context.Background(), cfg.Catalog.CSVPath); err != nil {
			logger.Warn("symbol catalog import failed", zap.Error(err))
		}
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)

	authHandler := &handler.AuthHandler{Auth: authSvc, Repo: store}
	authHandler.Register(engine)
	requireAuth := authHandler.RequireAuth()

	txHandler := &handler.TransactionHandler{Repo: store}
	txHandler.Register(engine, requireAuth)
	portfolioHandler := &handler.PortfolioHandler{Portfolio: portfolioSvc, Repo: store}
	portfolioHandler.Register(engine, requireAuth)
	marketHandler := &handler.MarketHandler{
		Client:       marketClient,
		Quotes:       quoteCache,
		MaxBatchSize: cfg.Market.MaxBatchSize,
	}
	marketHandler.Register(engine)
	watchlistHandler := &handler.WatchlistHandler{Repo: store, Quotes: quoteCache}
	watchlistHandler.Register(engine, requireAuth)
	screenerHandler := &handler.ScreenerHandler{Repo: store, Quotes: quoteCache}
	screenerHandler.Register(engine)
	fundsHandler := &handler.FundsHandler{Repo: store}
	fundsHandler.Register(engine, requireAuth)
	postsHandler := &handler.PostsHandler{Repo: store}
	postsHandler.Register(engine, requireAuth)
	messagesHandler := &handler.MessagesHandler{Inbox: inboxSvc}
	messagesHandler.Register(engine, requireAuth)
	inquiriesHandler := &handler.InquiriesHandler{Inbox: inboxSvc, Auth: authSvc}
	inquiriesHandler.Register(engine, requireAuth)
	newsHandler := &handler.NewsHandler{News: newsSvc}
	newsHandler.Register(engine)
	streamHandler := &handler.StreamHandler{
		Repo:            store,
		Quotes:          quoteCache,
		Logger:          logger,
		RefreshInterval: cfg.Stream.RefreshInterval,
		MaxSymbols:      cfg.Stream.MaxSymbols,
	}
	streamHandler.Register(engine, requireAuth)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.FundRegistrySync, func(ctx context.Context) {
			if err := registrySvc.Sync(ctx); err != nil {
				logger.Warn("cron fund registry sync failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register fund registry sync failed", zap.Error(err))
		}
		_, err = cronRunner.Add(cfg.Cron.PortfolioSnapshot, func(ctx context.Context) {
			if err := portfolioSvc.SnapshotPortfolios(ctx); err != nil {
				logger.Warn("cron portfolio snapshot failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register portfolio snapshot failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()

		// First registry download happens in the background so startup is not
		// blocked behind a 10MB+ fetch.
		go func() {
			if err := registrySvc.Sync(ctx); err != nil {
				logger.Warn("initial fund registry sync failed", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
