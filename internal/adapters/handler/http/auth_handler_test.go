package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	adapterHTTP "github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/handler/http"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/repository"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/services"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	userRepo := repository.NewInMemoryUserRepository()
	tokenService := services.NewTokenService("test-secret", "test-issuer", 1*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	handler := adapterHTTP.NewAuthHandler(authService)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		r := setupAuthRouter()

		w := postJSON(r, "/api/v1/auth/register", `{"email": "amina@example.com", "password": "password123"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"amina@example.com"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Fail: 409 on duplicate email", func(t *testing.T) {
		r := setupAuthRouter()

		w := postJSON(r, "/api/v1/auth/register", `{"email": "amina@example.com", "password": "password123"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(r, "/api/v1/auth/register", `{"email": "amina@example.com", "password": "password123"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already exists")
	})

	t.Run("Fail: 400 on short password", func(t *testing.T) {
		r := setupAuthRouter()

		w := postJSON(r, "/api/v1/auth/register", `{"email": "amina@example.com", "password": "short"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 on malformed email", func(t *testing.T) {
		r := setupAuthRouter()

		w := postJSON(r, "/api/v1/auth/register", `{"email": "not-an-email", "password": "password123"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success: 200 with token", func(t *testing.T) {
		r := setupAuthRouter()

		w := postJSON(r, "/api/v1/auth/register", `{"email": "amina@example.com", "password": "password123"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(r, "/api/v1/auth/login", `{"email": "amina@example.com", "password": "password123"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":`)
	})

	t.Run("Fail: 401 on wrong password", func(t *testing.T) {
		r := setupAuthRouter()

		w := postJSON(r, "/api/v1/auth/register", `{"email": "amina@example.com", "password": "password123"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(r, "/api/v1/auth/login", `{"email": "amina@example.com", "password": "wrong-password"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("Fail: 401 on unknown email", func(t *testing.T) {
		r := setupAuthRouter()

		w := postJSON(r, "/api/v1/auth/login", `{"email": "nobody@example.com", "password": "password123"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
