package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-recipe-box/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps an error to the wire shape {"error": message}.
// Classified errors carry their own status and client message;
// anything else is logged with detail and returned as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		// Infrastructure failures keep their detail in the logs only.
		if apiErr.HTTPStatus >= 500 {
			slog.Error("internal error", "code", apiErr.Code, "details", apiErr.Details)
		}
		writeJSON(w, apiErr.HTTPStatus, map[string]string{"error": apiErr.Message})
		return
	}

	slog.Error("unhandled error", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
}
