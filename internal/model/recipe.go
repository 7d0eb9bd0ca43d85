package model

import "encoding/json"

// SearchResponse is the shape returned by GET /api/recipes/complex.
// Results are forwarded from the upstream API without reshaping.
type SearchResponse struct {
	Results      []json.RawMessage `json:"results"`
	TotalResults int               `json:"totalResults"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
}

// RecipeDetails is the projected subset of the upstream recipe
// information payload returned by GET /api/recipes/{id}/details.
type RecipeDetails struct {
	ID                  int               `json:"id"`
	Title               string            `json:"title"`
	Image               string            `json:"image"`
	Servings            int               `json:"servings"`
	ReadyInMinutes      int               `json:"readyInMinutes"`
	Instructions        string            `json:"instructions"`
	ExtendedIngredients []json.RawMessage `json:"extendedIngredients"`
	SourceURL           string            `json:"sourceUrl"`
}
