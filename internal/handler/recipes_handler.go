package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-recipe-box/internal/model"
	"go-recipe-box/internal/service"
	"go-recipe-box/pkg/apierror"
)

type RecipesHandler struct {
	service *service.RecipeService
}

func NewRecipesHandler(service *service.RecipeService) *RecipesHandler {
	return &RecipesHandler{service: service}
}

func (h *RecipesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page := intQueryParam(r, "page", 1)
	limit := intQueryParam(r, "limit", 5)

	result, err := h.service.Search(r.Context(), query, page, limit)
	if err != nil {
		if errors.Is(err, model.ErrUpstream) {
			writeError(w, apierror.New("UPSTREAM_ERROR", "An error occurred while fetching recipes.", err.Error(), http.StatusInternalServerError))
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *RecipesHandler) Details(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "id")

	details, err := h.service.Details(r.Context(), recipeID)
	if err != nil {
		if errors.Is(err, model.ErrUpstream) {
			writeError(w, apierror.New("UPSTREAM_ERROR", "Could not fetch recipe details.", err.Error(), http.StatusInternalServerError))
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// intQueryParam falls back to def when the parameter is absent or not
// a number.
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
