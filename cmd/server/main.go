package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/floorida/backend/api/handler"
	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/internal/config"
	"github.com/floorida/backend/internal/infrastructure/buffer"
	"github.com/floorida/backend/internal/infrastructure/monitor"
	pgInfra "github.com/floorida/backend/internal/infrastructure/postgres"
	redisInfra "github.com/floorida/backend/internal/infrastructure/redis"
	"github.com/floorida/backend/internal/middleware"
	"github.com/floorida/backend/internal/router"
	"github.com/floorida/backend/internal/services"
	"github.com/floorida/backend/internal/services/lifecycle"
	"github.com/floorida/backend/pkg/httpcontext"
	"github.com/floorida/backend/pkg/logger"
	"github.com/floorida/backend/pkg/ttlcache"
	"github.com/floorida/backend/repository/postgres"
	redisRepo "github.com/floorida/backend/repository/redis"
	authUC "github.com/floorida/backend/usecase/auth"
	profileUC "github.com/floorida/backend/usecase/profile"
	scheduleUC "github.com/floorida/backend/usecase/schedule"
	teamUC "github.com/floorida/backend/usecase/team"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	scheduleRepo := postgres.NewScheduleRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)
	levelCache := redisRepo.NewLevelCache(redisClient, cfg.Game.LevelCacheTTL, zapLogger)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		scheduleRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	gameCfg := scheduleUC.Config{
		MaxFloor:    cfg.Game.MaxFloor,
		CoinsPerWin: cfg.Game.CoinsPerWin,
	}

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	profileCache := ttlcache.New[*domain.User](nil)
	profileUseCase := profileUC.New(userRepo, bufferBridge, profileCache, cfg.Game.ProfileTTL, zapLogger)
	scheduleUseCase := scheduleUC.New(scheduleRepo, userRepo, bufferBridge, gameCfg, zapLogger)
	teamUseCase := teamUC.New(teamRepo, userRepo, teamUC.Config{CoinsPerWin: cfg.Game.CoinsPerWin}, zapLogger).
		WithLevelCache(levelCache)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Schedule: apiHandler.NewScheduleHandler(scheduleUseCase, ctxAdapter, zapLogger),
		Team:     apiHandler.NewTeamHandler(teamUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
