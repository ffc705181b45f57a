package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniblog/utils"
)

var testSecret = []byte("test-secret")

func runAuth(t *testing.T, token string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	if token != "" {
		ctx.Request.Header.Set(TokenHeader, token)
	}

	AuthRequired(testSecret)(ctx)
	return w, ctx
}

func TestAuthRequired_MissingToken(t *testing.T) {
	w, ctx := runAuth(t, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token, authorization denied")
	assert.True(t, ctx.IsAborted())
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	w, ctx := runAuth(t, "garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid")
	assert.True(t, ctx.IsAborted())
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	tok, err := utils.GenerateToken(testSecret, 7, "Ann", -time.Minute)
	require.NoError(t, err)

	w, _ := runAuth(t, tok)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid")
}

func TestAuthRequired_ValidTokenAttachesIdentity(t *testing.T) {
	tok, err := utils.GenerateToken(testSecret, 7, "Ann", time.Hour)
	require.NoError(t, err)

	w, ctx := runAuth(t, tok)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, ctx.IsAborted())

	id, exists := ctx.Get(ContextUserIDKey)
	require.True(t, exists)
	assert.Equal(t, uint(7), id)

	name, exists := ctx.Get(ContextUserNameKey)
	require.True(t, exists)
	assert.Equal(t, "Ann", name)
}
