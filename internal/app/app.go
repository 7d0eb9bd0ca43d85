package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to SQLite")
	db, err := database.New(context.Background(), cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Conn)
	favoriteRepo := repository.NewFavoriteRepository(db.Conn)
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL, userRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	favoritesService := service.NewFavoritesService(favoriteRepo)
	favoritesHandler := handler.NewFavoritesHandler(favoritesService)

	recipeClient := spoonacular.New(cfg.SpoonacularBaseURL, cfg.SpoonacularAPIKey, cfg.UpstreamTimeout, cfg.UpstreamRPS)
	recipeService := service.NewRecipeService(recipeClient, cache.New(), cfg.SearchCacheTTL)
	recipesHandler := handler.NewRecipesHandler(recipeService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:      authHandler,
		Recipes:   recipesHandler,
		Favorites: favoritesHandler,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
