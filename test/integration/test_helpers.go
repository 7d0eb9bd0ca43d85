//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-recipe-box/internal/cache"
	"go-recipe-box/internal/config"
	"go-recipe-box/internal/database"
	"go-recipe-box/internal/handler"
	"go-recipe-box/internal/middleware"
	"go-recipe-box/internal/repository"
	"go-recipe-box/internal/router"
	"go-recipe-box/internal/service"
	"go-recipe-box/internal/spoonacular"
)

// newServer wires the full application against a temp SQLite file and
// the given upstream recipe API, and serves it over httptest.
func newServer(t *testing.T, upstreamURL string) *httptest.Server {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(context.Background()))

	userRepo := repository.NewUserRepository(db.Conn)
	favoriteRepo := repository.NewFavoriteRepository(db.Conn)

	authService, err := service.NewAuthService("test-secret", time.Hour, userRepo)
	require.NoError(t, err)

	recipeClient := spoonacular.New(upstreamURL, "test-key", 5*time.Second, 100)
	recipeService := service.NewRecipeService(recipeClient, cache.New(), time.Minute)

	cfg := &config.Config{
		CORSOrigins:    []string{"*"},
		RequestTimeout: 30 * time.Second,
	}

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Recipes:   handler.NewRecipesHandler(recipeService),
		Favorites: handler.NewFavoritesHandler(service.NewFavoritesService(favoriteRepo)),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)
	return server
}

func fakeRecipeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/recipes/complexSearch" {
			_, _ = w.Write([]byte(`{"results":[],"totalResults":0}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"title":"Stub"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method string, url string, body any, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func registerUser(t *testing.T, serverURL string, username string, password string) {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, serverURL+"/api/auth/register",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func loginUser(t *testing.T, serverURL string, username string, password string) (string, int64) {
	t.Helper()

	resp, raw := doJSON(t, http.MethodPost, serverURL+"/api/auth/login",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		UserID  int64  `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.Equal(t, "Login successful", parsed.Message)
	require.NotEmpty(t, parsed.Token)
	return parsed.Token, parsed.UserID
}
