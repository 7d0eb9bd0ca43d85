package model

// Favorite is one saved recipe for one user. Duplicates per
// (userId, recipeId) are allowed; there is no uniqueness constraint.
type Favorite struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	RecipeID   string `json:"recipeId"`
	RecipeName string `json:"recipeName"`
}
