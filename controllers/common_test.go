package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniblog/config"
	"miniblog/middleware"
	"miniblog/models"
	"miniblog/routes"
	"miniblog/utils"
)

const testSecret = "test-secret"

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh :memory: database exists per connection; keep the pool at one.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	cfg := config.AppConfig{
		GinMode:            "test",
		JWTSecret:          testSecret,
		RateLimitPerMinute: 10000,
		AllowedOrigins:     []string{"*"},
	}

	return routes.SetupRouter(cfg, db, nil), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorMsgs(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var out struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	msgs := make([]string, 0, len(out.Errors))
	for _, e := range out.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

func createUser(t *testing.T, db *gorm.DB, name, email, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, PasswordHash: hash}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, title, body string, createDate time.Time) models.Post {
	t.Helper()
	post := models.Post{UserID: userID, Title: title, Body: body, CreateDate: createDate}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	tok, err := utils.GenerateToken([]byte(testSecret), user.ID, user.Name, time.Hour)
	require.NoError(t, err)
	return tok
}
