// Command server runs the bus journey search API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/bussearch/modules/search"
	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/cache"
	"github.com/dmitrymomot/bussearch/pkg/clientip"
	"github.com/dmitrymomot/bussearch/pkg/config"
	"github.com/dmitrymomot/bussearch/pkg/cookie"
	"github.com/dmitrymomot/bussearch/pkg/devicesession"
	"github.com/dmitrymomot/bussearch/pkg/httpserver"
	"github.com/dmitrymomot/bussearch/pkg/locations"
	"github.com/dmitrymomot/bussearch/pkg/logger"
	"github.com/dmitrymomot/bussearch/pkg/redis"
	"github.com/dmitrymomot/bussearch/pkg/requestid"
	"github.com/dmitrymomot/bussearch/pkg/session"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	Name             string        `env:"APP_NAME" envDefault:"bussearch" validate:"required"`
	ReadinessTimeout time.Duration `env:"HEALTH_READINESS_TIMEOUT" envDefault:"2s" validate:"gt=0"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		apiCfg     busapi.Config
		httpCfg    httpserver.Config
		redisCfg   redis.Config
		cookieCfg  cookie.Config
		sessionCfg session.Config
		locCfg     locations.Config
		deviceCfg  devicesession.Config
		searchCfg  search.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&apiCfg),
		config.Load(&httpCfg),
		config.Load(&redisCfg),
		config.Load(&cookieCfg),
		config.Load(&sessionCfg),
		config.Load(&locCfg),
		config.Load(&deviceCfg),
		config.Load(&searchCfg),
	); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var redisClient *goredis.Client
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		log.InfoContext(ctx, "redis connected")
	}
	if redisClient == nil && (locCfg.CacheBackend == "redis" || sessionCfg.Store == "redis") {
		return errors.New("REDIS_URL is required when a redis backend is selected")
	}

	api, err := busapi.NewFromConfig(apiCfg, busapi.WithLogger(log))
	if err != nil {
		return err
	}

	var catalog locations.Cache
	switch locCfg.CacheBackend {
	case "redis":
		catalog = cache.NewRedis[*busapi.LocationResponse](redisClient, cache.WithLogger[*busapi.LocationResponse](log))
	default:
		catalog = cache.NewMemory(
			cache.WithCapacity[*busapi.LocationResponse](locCfg.CacheCapacity),
			cache.WithEvictCallback(func(key string, _ *busapi.LocationResponse) {
				log.Debug("catalog cache entry evicted", logger.CacheKey(key))
			}),
		)
	}
	locSvc, err := locations.NewFromConfig(locCfg, api, catalog, locations.WithLogger(log))
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	// One TTL governs device session validity; the server session is created
	// with it and extended by SessionStore.Save when needed.
	sessionOpts := []session.Option{
		session.WithCookieManager(cookies),
		session.WithTTL(deviceCfg.TTL),
		session.WithLogger(log),
	}
	if sessionCfg.Store == "redis" {
		sessionOpts = append(sessionOpts, session.WithStore(session.NewRedisStore(redisClient)))
	} else {
		store := session.NewMemoryStore(sessionCfg.CleanupInterval)
		defer store.Close()
		sessionOpts = append(sessionOpts, session.WithStore(store))
	}
	sessions := session.NewFromConfig(sessionCfg, sessionOpts...)

	devices, err := devicesession.NewFromConfig(deviceCfg, api, devicesession.WithLogger(log))
	if err != nil {
		return err
	}

	searchSvc, err := search.NewFromConfig(searchCfg, locSvc, api, cookies, search.WithLogger(log))
	if err != nil {
		return err
	}

	var checks []httpserver.Check
	if redisClient != nil {
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(redisClient)})
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware, middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, appCfg.ReadinessTimeout, checks...))

	r.Group(func(r chi.Router) {
		r.Use(devices.Middleware(sessions))
		r.Mount("/", searchSvc.Handle())
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
