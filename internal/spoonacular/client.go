// Package spoonacular is a thin client for the Spoonacular recipe API.
// Every failure collapses into model.ErrUpstream: callers never see
// upstream status codes, bodies, or transport detail.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"go-recipe-box/internal/model"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// SearchResult mirrors the fields of the complexSearch response the
// service forwards. Individual results pass through unparsed.
type SearchResult struct {
	Results      []json.RawMessage `json:"results"`
	TotalResults int               `json:"totalResults"`
}

// RecipeInfo is the subset of /recipes/{id}/information the service
// projects into its own details response.
type RecipeInfo struct {
	ID                  int               `json:"id"`
	Title               string            `json:"title"`
	Image               string            `json:"image"`
	Servings            int               `json:"servings"`
	ReadyInMinutes      int               `json:"readyInMinutes"`
	Instructions        string            `json:"instructions"`
	ExtendedIngredients []json.RawMessage `json:"extendedIngredients"`
	SourceURL           string            `json:"sourceUrl"`
}

// New builds a client. The timeout bounds every upstream call; a hang
// past it surfaces as model.ErrUpstream instead of stalling the
// request forever. rps caps outbound request rate to stay inside the
// API quota.
func New(baseURL string, apiKey string, timeout time.Duration, rps float64) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}

	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Search calls /recipes/complexSearch with the given window.
func (c *Client) Search(ctx context.Context, query string, offset int, number int) (SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("offset", strconv.Itoa(offset))
	params.Set("number", strconv.Itoa(number))
	params.Set("addRecipeInformation", "true")

	var result SearchResult
	if err := c.getJSON(ctx, "/recipes/complexSearch", params, &result); err != nil {
		return SearchResult{}, err
	}
	return result, nil
}

// Recipe calls /recipes/{id}/information.
func (c *Client) Recipe(ctx context.Context, recipeID string) (RecipeInfo, error) {
	var info RecipeInfo
	if err := c.getJSON(ctx, "/recipes/"+url.PathEscape(recipeID)+"/information", url.Values{}, &info); err != nil {
		return RecipeInfo{}, err
	}
	return info, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for upstream rate limiter: %w", model.ErrUpstream)
	}

	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build upstream request: %w", model.ErrUpstream)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call upstream: %v: %w", err, model.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream returned status %d: %w", resp.StatusCode, model.ErrUpstream)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %v: %w", err, model.ErrUpstream)
	}
	return nil
}
