package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-recipe-box/internal/config"
	"go-recipe-box/internal/handler"
	"go-recipe-box/internal/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Recipes   *handler.RecipesHandler
	Favorites *handler.FavoritesHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
		})

		// The recipe proxy is deliberately unauthenticated.
		api.Route("/recipes", func(recipes chi.Router) {
			recipes.Get("/complex", h.Recipes.Search)
			recipes.Get("/{id}/details", h.Recipes.Details)
		})

		api.Route("/users/{userId}/favorites", func(favorites chi.Router) {
			favorites.Use(authMiddleware.RequireAuth)
			favorites.Post("/", h.Favorites.Add)
			favorites.Get("/", h.Favorites.List)
			favorites.Delete("/{favoriteId}", h.Favorites.Remove)
		})
	})

	return r
}
