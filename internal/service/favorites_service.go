package service

import (
	"context"
	"net/http"

	"go-recipe-box/internal/model"
	"go-recipe-box/internal/repository"
	"go-recipe-box/pkg/apierror"
)

type FavoritesService struct {
	favorites *repository.FavoriteRepository
}

func NewFavoritesService(favorites *repository.FavoriteRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites}
}

// Add saves a favorite for the authenticated user. The ownership check
// runs before validation so a mismatched caller learns nothing about
// what the request body would have done.
func (s *FavoritesService) Add(ctx context.Context, pathUserID int64, identity *model.AuthClaims, recipeID string, recipeName string) (int64, error) {
	if err := checkOwnership(pathUserID, identity); err != nil {
		return 0, err
	}

	if recipeID == "" || recipeName == "" {
		return 0, apierror.New("BAD_REQUEST", "recipeId and recipeName are required", "", http.StatusBadRequest)
	}

	return s.favorites.Create(ctx, pathUserID, recipeID, recipeName)
}

func (s *FavoritesService) List(ctx context.Context, pathUserID int64, identity *model.AuthClaims) ([]model.Favorite, error) {
	if err := checkOwnership(pathUserID, identity); err != nil {
		return nil, err
	}

	return s.favorites.ListByUser(ctx, pathUserID)
}

// Remove deletes one favorite. A favoriteId owned by another user is
// reported as not found, never as forbidden, so ids cannot be probed
// for existence.
func (s *FavoritesService) Remove(ctx context.Context, pathUserID int64, favoriteID int64, identity *model.AuthClaims) error {
	if err := checkOwnership(pathUserID, identity); err != nil {
		return err
	}

	return s.favorites.Delete(ctx, favoriteID, pathUserID)
}

func checkOwnership(pathUserID int64, identity *model.AuthClaims) error {
	if identity == nil || identity.UserID != pathUserID {
		return apierror.New("FORBIDDEN", "Cannot access favorites of another user", "", http.StatusForbidden)
	}
	return nil
}
