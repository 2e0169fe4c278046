package middleware

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/hertz-contrib/cors"
	"golang.org/x/time/rate"

	"mini-blog/pkg/common/config"
)

// LoggerMiddleware logs one line per request.
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		latency := time.Since(start)

		hlog.CtxInfof(c, "| %3d | %13v | %15s | %-7s | %s | user=%d",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			CurrentUserID(ctx),
		)
	}
}

/*
	Set the environment at startup:
	export APP_ENV=production
	go run ./cmd/web
*/

// RecoveryMiddleware turns panics into 500 responses; stacks are only shown outside production.
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] %v\n%s", err, stack)

				if cfg.IsProd() {
					ctx.AbortWithStatusJSON(500, utils.H{
						"code":  500,
						"error": "internal server error",
					})
				} else {
					ctx.AbortWithStatusJSON(500, utils.H{
						"code":  500,
						"error": fmt.Sprintf("%v", err),
						"stack": strings.Split(stack, "\n"),
					})
				}
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware applies the configured cross-origin policy.
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	allowed := make(map[string]bool, len(corsConfig.AllowOrigins))
	for _, o := range corsConfig.AllowOrigins {
		allowed[o] = true
	}

	return cors.New(
		cors.Config{
			AllowMethods:     corsConfig.AllowMethods,
			AllowHeaders:     corsConfig.AllowHeaders,
			ExposeHeaders:    corsConfig.ExposeHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAge,
			AllowOriginFunc: func(origin string) bool {
				if allowed[origin] {
					return true
				}
				for _, domain := range corsConfig.TrustedDomains {
					if strings.HasSuffix(origin, domain) {
						return true
					}
				}
				return false
			},
		},
	)
}

// TimeoutMiddleware bounds the context handed to the handlers, and through them to GORM.
func TimeoutMiddleware(seconds int) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if seconds <= 0 {
			ctx.Next(c)
			return
		}

		timeoutCtx, cancel := context.WithTimeout(c, time.Duration(seconds)*time.Second)
		defer cancel()

		ctx.Next(timeoutCtx)

		if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
			hlog.CtxWarnf(c, "request timeout path=%s", ctx.Path())
		}
	}
}

// RateLimitMiddleware is a process-wide token bucket.
func RateLimitMiddleware(perSecond, burst int) app.HandlerFunc {
	if burst <= 0 {
		burst = perSecond
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(c context.Context, ctx *app.RequestContext) {
		if !limiter.Allow() {
			hlog.CtxInfof(c, "[RATE LIMIT] path=%s", ctx.Path())
			ctx.AbortWithStatusJSON(429, utils.H{
				"code":  429,
				"error": "too many requests",
			})
			return
		}
		ctx.Next(c)
	}
}

// SecurityCheckMiddleware rejects oversized bodies and methods the API does not serve.
func SecurityCheckMiddleware(sec config.SecurityConfig) app.HandlerFunc {
	methods := make(map[string]bool, len(sec.AllowedMethods))
	for _, m := range sec.AllowedMethods {
		methods[strings.ToUpper(m)] = true
	}

	return func(c context.Context, ctx *app.RequestContext) {
		if sec.MaxBodySize > 0 && int64(len(ctx.Request.Body())) > sec.MaxBodySize {
			securityResponse(ctx, "request body exceeds max size", 413)
			return
		}

		if len(methods) > 0 && !methods[string(ctx.Method())] {
			securityResponse(ctx, "method not allowed", 405)
			return
		}

		ctx.Next(c)
	}
}

func securityResponse(ctx *app.RequestContext, msg string, status int) {
	hlog.Warnf("SecurityAlert[status=%d]: %s path=%s", status, msg, ctx.Path())
	ctx.AbortWithStatusJSON(status, utils.H{
		"code":  status,
		"error": msg,
	})
}
