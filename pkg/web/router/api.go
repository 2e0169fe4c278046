package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"gorm.io/gorm"

	"mini-blog/pkg/common/config"
	commentdao "mini-blog/pkg/core/comment/repository/dao/impl"
	commentservice "mini-blog/pkg/core/comment/service"
	postdao "mini-blog/pkg/core/post/repository/dao/impl"
	postservice "mini-blog/pkg/core/post/service"
	userdao "mini-blog/pkg/core/user/repository/dao/impl"
	userservice "mini-blog/pkg/core/user/service"
	"mini-blog/pkg/web/handler"
	"mini-blog/pkg/web/middleware"
)

// RegisterAPIs wires repositories, services and handlers, then mounts every route.
func RegisterAPIs(h *server.Hertz, cfg *config.Config, db *gorm.DB) {
	userRepo := userdao.NewGormUserRepository(db)
	postRepo := postdao.NewGormPostRepository(db)
	commentRepo := commentdao.NewGormCommentRepository(db)

	users := userservice.NewUserService(userRepo, userservice.Options{
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	posts := postservice.NewPostService(postRepo)
	comments := commentservice.NewCommentService(commentRepo, postRepo)

	healthHandler := handler.NewHealthCheckHandler(db)
	userHandler := handler.NewUserHandler(users)
	postHandler := handler.NewPostHandler(posts)
	commentHandler := handler.NewCommentHandler(comments)

	// Global middleware, in execution order.
	chain := []app.HandlerFunc{
		middleware.RecoveryMiddleware(cfg),
		middleware.LoggerMiddleware(),
		middleware.SecurityCheckMiddleware(cfg.Middleware.Security),
		middleware.TimeoutMiddleware(cfg.Middleware.Timeout.RequestTimeout),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
	}
	if cfg.Middleware.RateLimit.Rate > 0 {
		chain = append(chain, middleware.RateLimitMiddleware(
			cfg.Middleware.RateLimit.Rate,
			cfg.Middleware.RateLimit.Burst,
		))
	}
	chain = append(chain, middleware.TokenAuth(users))
	h.Use(chain...)

	h.GET("/health", healthHandler.AdvancedHealthCheck)

	h.POST("/auth", userHandler.Login)

	userGroup := h.Group("/users")
	{
		userGroup.GET("", userHandler.List)
		userGroup.POST("", userHandler.Register)
		userGroup.GET("/:id", userHandler.Get)
		userGroup.PUT("/:id", userHandler.Update)
	}

	postGroup := h.Group("/posts")
	{
		postGroup.GET("", postHandler.List)
		postGroup.POST("", postHandler.Create)
		postGroup.GET("/:id", postHandler.Get)
		postGroup.PUT("/:id", postHandler.Update)
		postGroup.DELETE("/:id", postHandler.Delete)
	}

	commentGroup := h.Group("/comments")
	{
		commentGroup.GET("", commentHandler.List)
		commentGroup.POST("", commentHandler.Create)
		commentGroup.GET("/:id", commentHandler.Get)
		commentGroup.PUT("/:id", commentHandler.Update)
		commentGroup.DELETE("/:id", commentHandler.Delete)
	}
}
