// Package api holds the pieces shared by the HTTP handlers: JSON responses,
// response DTOs, request context and middleware.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/storefront"
)

// WriteJSON encodes v and writes it with the given status. The body is
// encoded before any header goes out, so an encoding failure still gets a
// clean 500.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		Logger(r.Context()).WithError(err).Error("could not encode response")
		WriteError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	writeBody(w, status, data)
}

// WriteError writes {"error": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	data, _ := json.Marshal(map[string]string{"error": message})
	writeBody(w, status, data)
}

func writeBody(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// WriteServiceError maps storefront and catalog errors to a status. Anything
// unrecognised is logged and answered with 500 and fallback.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, storefront.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, "Session not found")
	default:
		Logger(r.Context()).WithError(err).Error("request failed")
		WriteError(w, http.StatusInternalServerError, fallback)
	}
}
