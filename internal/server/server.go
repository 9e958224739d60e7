// Package server wires repositories, handlers and middleware into a gin
// engine.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/config"
	docs "github.com/snnyvrz/shelfshare/internal/docs"
	"github.com/snnyvrz/shelfshare/internal/handler"
	"github.com/snnyvrz/shelfshare/internal/logger"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/storage"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const Version = "0.2.0"

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	// Redis and Images may be nil.
	Redis     *redis.Client
	Images    storage.ImageStorage
	Logger    zerolog.Logger
	StartTime time.Time
}

func New(d Deps) *gin.Engine {
	cfg := d.Config

	gin.SetMode(cfg.GinMode)

	e := gin.New()
	e.Use(
		gin.Recovery(),
		logger.Middleware(d.Logger),
		middleware.CORS(cfg.AllowedOrigins),
	)

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.BasePath = "/api"

	users := repository.NewGormUserRepository(d.DB)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	sessions := auth.NewSessionStore(d.Redis, d.DB)
	authn := middleware.NewAuthMiddleware(users, tokens, sessions)

	healthHandler := handler.NewHealthHandler(d.DB, d.Redis, d.StartTime, Version)
	healthHandler.RegisterRoutes(e)

	api := e.Group("/api", authn.Authenticate())
	{
		bookHandler := handler.NewBookHandler(repository.NewGormBookRepository(d.DB))
		bookHandler.RegisterRoutes(api)
		bookHandler.RegisterLibraryRoutes(api)

		authorHandler := handler.NewAuthorHandler(repository.NewAuthorRepository(d.DB))
		authorHandler.RegisterRoutes(api)

		libraryHandler := handler.NewLibraryHandler(repository.NewGormLibraryRepository(d.DB))
		libraryHandler.RegisterRoutes(api)

		authHandler := handler.NewAuthHandler(
			users,
			tokens,
			sessions,
			auth.NewLoginThrottle(d.Redis, cfg.LoginThrottle, cfg.LoginMaxFailures),
			handler.AuthOptions{
				SessionTTL:   cfg.SessionTTL,
				SecureCookie: cfg.SessionCookieSecure,
			},
		)
		authHandler.RegisterRoutes(api)

		userHandler := handler.NewUserHandler(users, d.Images, cfg.CloudinaryUploadFolder)
		userHandler.RegisterRoutes(api)

		groupHandler := handler.NewGroupHandler(repository.NewGormGroupRepository(d.DB))
		groupHandler.RegisterRoutes(api)

		postHandler := handler.NewPostHandler(
			repository.NewGormPostRepository(d.DB),
			repository.NewGormCommentRepository(d.DB),
		)
		postHandler.RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e
}
