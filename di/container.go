package di

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"hearing-server/api"
	"hearing-server/api/casestore"
	"hearing-server/config"
	"hearing-server/dao/redis"
	"hearing-server/db"
	"hearing-server/hearingtime"
	"hearing-server/server"
	"hearing-server/server/handlers"
	services "hearing-server/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                   *config.Config
	RedisClient              db.RedisClient
	RedisHearingDao          *redis.RedisHearingDAO
	CaseStoreAPI             casestore.CaseStoreAPI
	Engine                   *hearingtime.Engine
	HearingService           *services.HearingService
	HearingHandler           *handlers.HearingHandler
	MuxRouter                *mux.Router
	Router                   *server.Router
	HearingsHttpServer       *server.HearingsHttpServer
	HearingsRefresherService *services.HearingsRefresherService
}

// NewContainer initializes and wires up all dependencies. The prod env talks
// to Redis and the case store; any other env uses in-memory Redis and the
// JSON fixture.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	logger.Info("Initializing container", zap.String("env", cfg.Env))

	zone, err := cfg.Zone()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.WeekStartDay()
	if err != nil {
		return nil, err
	}

	var redisClient db.RedisClient
	var caseStoreAPI casestore.CaseStoreAPI
	if cfg.Env == config.ENV_PROD {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		goRedisClient, err := db.NewGoRedisClient(ctx, redisInternalClient, logger)
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisClient = goRedisClient

		logger.Info("Using case store", zap.String("base_url", cfg.Store.BaseURL), zap.String("table", cfg.Store.Table))
		httpClient := api.NewHTTPClient(cfg.Store.BaseURL, cfg.Store.Timeout)
		caseStoreAPI = casestore.NewSupabaseApiClient(httpClient, cfg.Store.APIKey, cfg.Store.Table)
	} else {
		logger.Info("Using in-memory redis and case fixture", zap.String("fixture", cfg.Store.FixturePath))
		redisClient = db.NewMockRedisClient()
		caseStoreAPI = casestore.NewCaseStoreApiClientMock(cfg.Store.FixturePath)
	}

	redisHearingDao := redis.NewRedisHearingDAO(redisClient)
	engine := hearingtime.NewEngine(zone, cfg.ActiveWindow, cfg.UpcomingLimit)
	hearingService := services.NewHearingService(redisHearingDao, engine, nil)
	hearingHandler := handlers.NewHearingHandler(hearingService, weekStart, logger)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(hearingHandler, muxRouter, logger)
	hearingsHttpServer := server.NewHearingsHttpServer(router, muxRouter, cfg.Listen, logger)

	refresher := services.NewHearingsRefresherService(
		redisHearingDao, caseStoreAPI, cfg.Refresh.Schedule, cfg.Refresh.Timeout, logger)

	return &Container{
		Config:                   cfg,
		RedisClient:              redisClient,
		RedisHearingDao:          redisHearingDao,
		CaseStoreAPI:             caseStoreAPI,
		Engine:                   engine,
		HearingService:           hearingService,
		HearingHandler:           hearingHandler,
		MuxRouter:                muxRouter,
		Router:                   router,
		HearingsHttpServer:       hearingsHttpServer,
		HearingsRefresherService: refresher,
	}, nil
}

// Close releases the Redis connection.
func (c *Container) Close() error {
	return c.RedisClient.Close()
}
