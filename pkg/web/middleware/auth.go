package middleware

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"

	usermodel "mini-blog/pkg/core/user/model"
)

const currentUserKey = "current_user"

// TokenResolver finds the user holding an opaque token; nil means no such user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*usermodel.User, error)
}

// TokenAuth establishes the current user from the Authorization header.
// A missing or unknown token leaves the request anonymous.
func TokenAuth(resolver TokenResolver) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		token := bearerToken(string(ctx.GetHeader("Authorization")))
		if token == "" {
			ctx.Next(c)
			return
		}

		user, err := resolver.ResolveToken(c, token)
		if err != nil {
			hlog.CtxErrorf(c, "resolve token: %v", err)
			ctx.AbortWithStatusJSON(500, utils.H{
				"code":  500,
				"error": "internal server error",
			})
			return
		}
		if user != nil {
			ctx.Set(currentUserKey, user)
		}
		ctx.Next(c)
	}
}

// bearerToken accepts "Bearer <token>" as well as a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(ctx *app.RequestContext) *usermodel.User {
	v, ok := ctx.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*usermodel.User)
	return user
}

// CurrentUserID returns the authenticated user's id, or 0 when anonymous.
func CurrentUserID(ctx *app.RequestContext) int64 {
	if user := CurrentUser(ctx); user != nil {
		return user.ID
	}
	return 0
}
