package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
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

func newTestHandler(t *testing.T, upstreamURL string) (http.Handler, *service.AuthService) {
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

	return router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Recipes:   handler.NewRecipesHandler(recipeService),
		Favorites: handler.NewFavoritesHandler(service.NewFavoritesService(favoriteRepo)),
	}), authService
}

func fakeRecipeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/recipes/complexSearch":
			_, _ = w.Write([]byte(`{"results":[{"id":101,"title":"Tomato Soup"}],"totalResults":1}`))
		case "/recipes/101/information":
			_, _ = w.Write([]byte(`{"id":101,"title":"Tomato Soup","image":"img","servings":4,"readyInMinutes":30,"instructions":"Simmer.","extendedIngredients":[],"sourceUrl":"https://example.com"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func loginToken(t *testing.T, h http.Handler, username string, password string) (string, int64) {
	t.Helper()

	registerBody := `{"username":"` + username + `","password":"` + password + `"}`
	apitest.New().
		Handler(h).
		Post("/api/auth/register").
		Body(registerBody).
		Expect(t).
		Status(http.StatusCreated).
		End()

	result := apitest.New().
		Handler(h).
		Post("/api/auth/login").
		Body(registerBody).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.token")).
		End()

	var parsed struct {
		Token  string `json:"token"`
		UserID int64  `json:"userId"`
	}
	require.NoError(t, json.NewDecoder(result.Response.Body).Decode(&parsed))
	return parsed.Token, parsed.UserID
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	apitest.New().
		Handler(h).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Body("ok").
		End()
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	apitest.New().
		Handler(h).
		Post("/api/auth/register").
		Body(`{"username":"","password":"pw"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "username and password are required")).
		End()

	apitest.New().
		Handler(h).
		Post("/api/auth/register").
		Body(`not json`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestRegisterDuplicate(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	body := `{"username":"alice","password":"pw123"}`
	apitest.New().Handler(h).Post("/api/auth/register").Body(body).
		Expect(t).Status(http.StatusCreated).End()

	apitest.New().
		Handler(h).
		Post("/api/auth/register").
		Body(body).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Equal("$.error", "Username already exists")).
		End()
}

func TestLoginInvalidCredentials(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	apitest.New().Handler(h).Post("/api/auth/register").
		Body(`{"username":"alice","password":"pw123"}`).
		Expect(t).Status(http.StatusCreated).End()

	apitest.New().
		Handler(h).
		Post("/api/auth/login").
		Body(`{"username":"alice","password":"wrong"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "Invalid credentials")).
		End()
}

func TestSearchProxyDefaultsAndShape(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	apitest.New().
		Handler(h).
		Get("/api/recipes/complex").
		Query("query", "tomato").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.page", float64(1))).
		Assert(jsonpath.Equal("$.limit", float64(5))).
		Assert(jsonpath.Equal("$.totalResults", float64(1))).
		Assert(jsonpath.Len("$.results", 1)).
		End()
}

func TestRecipeDetailsProjection(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	apitest.New().
		Handler(h).
		Get("/api/recipes/101/details").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.id", float64(101))).
		Assert(jsonpath.Equal("$.title", "Tomato Soup")).
		Assert(jsonpath.Equal("$.servings", float64(4))).
		End()
}

func TestRecipeProxyUpstreamFailure(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	h, _ := newTestHandler(t, broken.URL)

	apitest.New().
		Handler(h).
		Get("/api/recipes/complex").
		Query("query", "tomato").
		Expect(t).
		Status(http.StatusInternalServerError).
		Assert(jsonpath.Equal("$.error", "An error occurred while fetching recipes.")).
		End()
}

func TestFavoritesRequireToken(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	apitest.New().
		Handler(h).
		Get("/api/users/1/favorites").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "No token provided")).
		End()

	apitest.New().
		Handler(h).
		Get("/api/users/1/favorites").
		Header("Authorization", "Bearer garbage").
		Expect(t).
		Status(http.StatusForbidden).
		Assert(jsonpath.Equal("$.error", "Invalid or expired token")).
		End()
}

func TestRemoveNonNumericFavoriteID(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	token, userID := loginToken(t, h, "alice", "pw123")

	// Ownership mismatch wins over the unparseable id.
	apitest.New().
		Handler(h).
		Delete(fmt.Sprintf("/api/users/%d/favorites/abc", userID+1)).
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusForbidden).
		Assert(jsonpath.Equal("$.error", "Cannot access favorites of another user")).
		End()

	// For the owner it reads as a favorite that does not exist.
	apitest.New().
		Handler(h).
		Delete(fmt.Sprintf("/api/users/%d/favorites/abc", userID)).
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.error", "Favorite not found")).
		End()
}

func TestFavoritesOwnership(t *testing.T) {
	h, _ := newTestHandler(t, fakeRecipeAPI(t).URL)

	token, _ := loginToken(t, h, "alice", "pw123")

	apitest.New().
		Handler(h).
		Post("/api/users/999/favorites").
		Header("Authorization", "Bearer "+token).
		Body(`{"recipeId":"5","recipeName":"Soup"}`).
		Expect(t).
		Status(http.StatusForbidden).
		Assert(jsonpath.Equal("$.error", "Cannot access favorites of another user")).
		End()
}
