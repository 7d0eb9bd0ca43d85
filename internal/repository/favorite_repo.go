package repository

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"go-recipe-box/internal/model"
	"go-recipe-box/pkg/apierror"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, userID int64, recipeID string, recipeName string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (userId, recipeId, recipeName) VALUES (?, ?, ?)`,
		userID, recipeID, recipeName)
	if err != nil {
		return 0, fmt.Errorf("create favorite: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read new favorite id: %w", err)
	}
	return id, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, userId, recipeId, recipeName FROM favorites WHERE userId = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.RecipeID, &f.RecipeName); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// Delete removes the favorite only when it belongs to userID. A row
// owned by someone else is indistinguishable from a missing one.
func (r *FavoriteRepository) Delete(ctx context.Context, favoriteID int64, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND userId = ?`, favoriteID, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read delete result: %w", err)
	}
	if affected == 0 {
		return apierror.New("NOT_FOUND", "Favorite not found", "", http.StatusNotFound)
	}
	return nil
}
