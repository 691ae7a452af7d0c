// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"bayou-blog/internal/messages"
	"bayou-blog/internal/utils"

	"github.com/google/uuid"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps AppError codes to HTTP statuses and writes the fixed
// message as {"detail": ...}. Non-AppError failures become opaque 500s.
func respondError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		respondJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), map[string]string{"detail": appErr.Message})
		return
	}
	respondJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
}

// decodeJSON parses the request body and runs struct validation. The returned
// error is already an AppError suitable for respondError.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return utils.NewAppError(utils.ErrInvalidInput, err.Error(), err)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, utils.NewAppError(utils.ErrInvalidInput, "Invalid id: "+r.PathValue(name), err)
	}
	return id, nil
}

// parsePagination reads ?page= and ?page_size= with defaults of 1 each. Both
// must be positive 32-bit integers.
func parsePagination(r *http.Request) (page, pageSize int, err error) {
	page, err = queryInt(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = queryInt(r, "page_size", 1)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 || value > math.MaxInt32 {
		return 0, utils.NewAppError(utils.ErrInvalidInput, messages.InvalidPagination, err)
	}
	return value, nil
}
