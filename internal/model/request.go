package model

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddFavoriteRequest struct {
	RecipeID   string `json:"recipeId"`
	RecipeName string `json:"recipeName"`
}
