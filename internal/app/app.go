package app

import (
	"context"
	"log/slog"

	httpapp "pressroom/internal/app/http"
	"pressroom/internal/config"
	"pressroom/internal/lib/authz"
	"pressroom/internal/repository"
	blog "pressroom/internal/services/blog_service"
	provider "pressroom/internal/services/provider_service"
	stats "pressroom/internal/services/stats_service"
	tag "pressroom/internal/services/tag_service"
	user "pressroom/internal/services/user_service"
	"pressroom/internal/storage/mongodb"
	rediscli "pressroom/internal/storage/redis"
	httprouters "pressroom/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	storage    *mongodb.Storage
	redis      *rediscli.Client
}

// New wires the whole service. A missing or unreachable database is fatal:
// the process refuses to come up rather than serve errors.
func New(log *slog.Logger, cfg *config.Config) *App {
	storage, err := mongodb.New(cfg.Mongo.URL, cfg.Mongo.Database)
	if err != nil {
		panic(err)
	}

	db, err := storage.Get(context.Background())
	if err != nil {
		panic(err)
	}

	redisClient := rediscli.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)

	repo := repository.NewRepository(db)

	statsService := stats.NewStatsService(log, repo.Blog)
	tagService := tag.NewTagService(log, repo.Tag, repo.Blog)
	blogService := blog.NewBlogService(log, repo.Blog, redisClient)
	userService := user.NewUserService(log, repo.User)
	providerService := provider.NewProviderService(log, repo.Provider)

	routers := httprouters.NewRouter(log, statsService, tagService, blogService, userService, providerService)

	guard := authz.NewAllowList(cfg.AdminEmails)

	server := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, routers, guard, map[string]httpapp.HealthChecker{
		"mongodb": storage,
		"redis":   redisClient,
	})
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		storage:    storage,
		redis:      redisClient,
	}
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.HTTPServer.Stop(); err != nil {
		return err
	}

	a.redis.Close()

	return a.storage.Close(ctx)
}
