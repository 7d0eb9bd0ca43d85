package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-recipe-box/internal/cache"
	"go-recipe-box/internal/model"
	"go-recipe-box/internal/spoonacular"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

type RecipeService struct {
	client         *spoonacular.Client
	searchCache    *cache.Cache
	searchCacheTTL time.Duration
}

func NewRecipeService(client *spoonacular.Client, searchCache *cache.Cache, searchCacheTTL time.Duration) *RecipeService {
	return &RecipeService{
		client:         client,
		searchCache:    searchCache,
		searchCacheTTL: searchCacheTTL,
	}
}

// Search translates the 1-based page/limit window into the upstream
// offset/number parameters and forwards the call. Recent identical
// searches are served from the cache.
func (s *RecipeService) Search(ctx context.Context, query string, page int, limit int) (model.SearchResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	cacheKey := fmt.Sprintf("search:%s:p%d:l%d", query, page, limit)
	if s.searchCache != nil {
		if cached, ok := s.searchCache.Get(cacheKey); ok {
			if resp, ok := cached.(model.SearchResponse); ok {
				return resp, nil
			}
		}
	}

	offset := (page - 1) * limit
	result, err := s.client.Search(ctx, query, offset, limit)
	if err != nil {
		return model.SearchResponse{}, err
	}

	resp := model.SearchResponse{
		Results:      result.Results,
		TotalResults: result.TotalResults,
		Page:         page,
		Limit:        limit,
	}
	if resp.Results == nil {
		resp.Results = []json.RawMessage{}
	}

	if s.searchCache != nil {
		s.searchCache.Set(cacheKey, resp, s.searchCacheTTL)
	}
	return resp, nil
}

// Details fetches one recipe and projects the fields the frontend
// renders; everything else from the upstream payload is dropped.
func (s *RecipeService) Details(ctx context.Context, recipeID string) (model.RecipeDetails, error) {
	info, err := s.client.Recipe(ctx, recipeID)
	if err != nil {
		return model.RecipeDetails{}, err
	}

	details := model.RecipeDetails{
		ID:                  info.ID,
		Title:               info.Title,
		Image:               info.Image,
		Servings:            info.Servings,
		ReadyInMinutes:      info.ReadyInMinutes,
		Instructions:        info.Instructions,
		ExtendedIngredients: info.ExtendedIngredients,
		SourceURL:           info.SourceURL,
	}
	if details.ExtendedIngredients == nil {
		details.ExtendedIngredients = []json.RawMessage{}
	}
	return details, nil
}
