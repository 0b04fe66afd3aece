package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/jwt"
	"github.com/noschwa/expense-tracker/internal/logger"
)

// Tokener defines the token operations protected handlers need.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// ErrorResponse is the uniform error body returned by every endpoint.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Unauthorized
	Error string `json:"error"`
}

// MessageResponse is the uniform success body for delete endpoints.
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	// example: Deleted successfully
	Message string `json:"message"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError encodes a uniform error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// authenticate resolves the request's bearer token to a user id. On failure
// it writes a 401 response and returns false.
func authenticate(w http.ResponseWriter, r *http.Request, tokener Tokener) (uuid.UUID, bool) {
	ctx := r.Context()

	tokenStr, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Errorw("unauthorized request: missing or malformed bearer token", "err", err)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}

	claims, err := tokener.GetClaims(ctx, tokenStr)
	if err != nil {
		logger.Log.Errorw("unauthorized request: invalid token", "err", err)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}

	return claims.UserID, true
}
