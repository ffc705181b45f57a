package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"miniblog/utils"
)

const (
	// TokenHeader carries the auth token on protected requests.
	TokenHeader = "x-auth-token"
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserNameKey stores the user's display name inside Gin context.
	ContextUserNameKey = "user_name"
)

// AuthRequired ensures the request carries a valid token and attaches the
// decoded identity to the context. It guards mutating post operations only;
// reads stay public.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := strings.TrimSpace(ctx.GetHeader(TokenHeader))
		if tokenString == "" {
			utils.Msg(ctx, http.StatusUnauthorized, "No token, authorization denied")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			utils.Msg(ctx, http.StatusUnauthorized, "Token is not valid")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserNameKey, claims.Name)
		ctx.Next()
	}
}
