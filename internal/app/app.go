package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/godilite/program-recommender/internal/config"
	handler "github.com/godilite/program-recommender/internal/grpc"
	"github.com/godilite/program-recommender/internal/repository"
	"github.com/godilite/program-recommender/internal/repository/migrations"
	"github.com/godilite/program-recommender/internal/service"
	"github.com/godilite/program-recommender/internal/transport/rest"
	"github.com/godilite/program-recommender/pkg/cache"
	dbbuilder "github.com/godilite/program-recommender/pkg/database"
	grpcsrv "github.com/godilite/program-recommender/pkg/grpc/server"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      cache.Cacher
	grpcServer *grpcsrv.Server
	httpServer *http.Server
	httpLis    net.Listener
}

// Option overrides how the app listens. Tests use it to bind ephemeral ports.
type Option func(*options)

type options struct {
	grpcListener net.Listener
	httpListener net.Listener
}

func WithGRPCListener(lis net.Listener) Option {
	return func(o *options) { o.grpcListener = lis }
}

func WithHTTPListener(lis net.Listener) Option {
	return func(o *options) { o.httpListener = lis }
}

// OpenDatabase builds the pool and applies pending migrations.
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	dbOpts := []dbbuilder.Option{
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithForeignKeys(true),
	}
	if cfg.DBBusyTimeout > 0 {
		dbOpts = append(dbOpts, dbbuilder.WithBusyTimeout(cfg.DBBusyTimeout))
	}
	dbPool, err := dbbuilder.New(dbOpts...)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	applied, err := migrations.Run(ctx, dbPool)
	if err != nil {
		dbPool.Close()
		return nil, err
	}
	if len(applied) > 0 {
		logger.Info("Migrations applied", zap.Strings("migrations", applied))
	}
	return dbPool, nil
}

// NewCache connects to Redis, or returns a no-op cache when no address is configured.
func NewCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Cacher, error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, caching disabled")
		return cache.Noop{}, nil
	}
	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
		cache.WithPassword(cfg.RedisPassword),
		cache.WithDB(cfg.RedisDB),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	return cacheClient, nil
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	dbPool, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	cacheClient, err := NewCache(ctx, cfg, logger)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	aggregator := service.NewAggregator(logger, service.WithContributionThreshold(cfg.ContributionThreshold))
	surveyService := service.NewSurveyService(repository.NewSurveyRepository(dbPool), aggregator, logger,
		service.WithEditsAfterCompletion(cfg.AllowEditsAfterCompletion))
	scoringService := service.NewScoringService(repository.NewAnswerScoreRepository(dbPool), logger)
	catalogService := service.NewCatalogService(repository.NewCatalogRepository(dbPool), logger)

	grpcHandlers := handler.NewGRPCHandlers(surveyService, scoringService, catalogService, cacheClient, logger, cfg.CacheTTL)

	grpcOpts := []grpcsrv.Option{
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
	}
	if o.grpcListener != nil {
		grpcOpts = append(grpcOpts, grpcsrv.WithListener(o.grpcListener))
	}
	grpcServer, err := grpcsrv.New(grpcOpts...)
	if err != nil {
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(handler.ServiceName, func(s *grpc.Server) {
		handler.RegisterSurveyServiceServer(s, grpcHandlers)
	})

	httpLis := o.httpListener
	if httpLis == nil {
		httpLis, err = net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
		if err != nil {
			if closeErr := grpcServer.Close(); closeErr != nil {
				logger.Warn("failed to release gRPC listener", zap.Error(closeErr))
			}
			cacheClient.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to listen on http port %d: %w", cfg.HTTPPort, err)
		}
	}

	router := rest.NewRouter(&rest.Container{
		Surveys:            surveyService,
		Scoring:            scoringService,
		Catalog:            catalogService,
		Cache:              cacheClient,
		CacheTTL:           cfg.CacheTTL,
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		grpcServer: grpcServer,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		httpLis: httpLis,
	}, nil
}

// Run starts both servers and blocks until ctx is cancelled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	httpErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", zap.String("addr", a.httpLis.Addr().String()))
		if err := a.httpServer.Serve(a.httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
		close(httpErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-httpErr:
		if ok {
			a.logger.Error("HTTP server failed", zap.Error(err))
			runErr = err
		}
	}

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP shutdown error", zap.Error(err))
	}
	if err := a.grpcServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("gRPC shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if shutdownCtx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return runErr
}

// GRPCAddr and HTTPAddr report the bound listen addresses.
func (a *App) GRPCAddr() net.Addr { return a.grpcServer.Addr() }
func (a *App) HTTPAddr() net.Addr { return a.httpLis.Addr() }
