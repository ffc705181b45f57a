package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError is a single violated validation rule, reported to the client as
// part of the full list of violations for the request.
type FieldError struct {
	Msg string `json:"msg"`
}

// ValidationFailed responds 400 with every violated rule.
func ValidationFailed(ctx *gin.Context, errs []FieldError) {
	ctx.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// Msg responds with a single-message JSON body, e.g. 404 {"msg":"Post not found"}.
func Msg(ctx *gin.Context, status int, msg string) {
	ctx.JSON(status, gin.H{"msg": msg})
}

// ServerError logs the underlying cause server-side and responds with a
// generic plain-text 500. The cause is never leaked to the client.
func ServerError(ctx *gin.Context, err error) {
	if Sugar != nil {
		Sugar.Errorw("server error", "path", ctx.FullPath(), "error", err)
	}
	ctx.String(http.StatusInternalServerError, "Server error")
}
