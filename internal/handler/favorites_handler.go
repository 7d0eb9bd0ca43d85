package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-recipe-box/internal/middleware"
	"go-recipe-box/internal/model"
	"go-recipe-box/internal/service"
	"go-recipe-box/pkg/apierror"
)

type FavoritesHandler struct {
	service *service.FavoritesService
}

func NewFavoritesHandler(service *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{service: service}
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	pathUserID, claims, err := h.requestIdentity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	favoriteID, err := h.service.Add(r.Context(), pathUserID, claims, payload.RecipeID, payload.RecipeName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Favorite recipe added successfully",
		"favoriteId": favoriteID,
	})
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	pathUserID, claims, err := h.requestIdentity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	favorites, err := h.service.List(r.Context(), pathUserID, claims)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favorites)
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	pathUserID, claims, err := h.requestIdentity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	favoriteID, err := strconv.ParseInt(chi.URLParam(r, "favoriteId"), 10, 64)
	if err != nil {
		// A non-numeric id can never match a row. The service still
		// runs its ownership check first, so a mismatched caller sees
		// 403 and the owner sees the usual 404.
		favoriteID = -1
	}

	if err := h.service.Remove(r.Context(), pathUserID, favoriteID, claims); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite deleted successfully"})
}

// requestIdentity parses the {userId} path segment and pulls the
// verified claims the auth middleware stored on the context.
func (h *FavoritesHandler) requestIdentity(r *http.Request) (int64, *model.AuthClaims, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return 0, nil, apierror.New("UNAUTHORIZED", "No token provided", "", http.StatusUnauthorized)
	}

	pathUserID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		// A non-numeric id can never match the numeric token identity.
		return 0, nil, apierror.New("FORBIDDEN", "Cannot access favorites of another user", "", http.StatusForbidden)
	}

	return pathUserID, claims, nil
}
