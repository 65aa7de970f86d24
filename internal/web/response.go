package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sonuudigital/storefront/internal/logs"
)

const (
	ReqCancelledMsg = "request cancelled"
)

// MessageResponse is the body shape for every error and most confirmations:
// a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

func RespondWithJSON(w http.ResponseWriter, logger logs.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			if logger != nil {
				logger.Error("failed to encode response", "error", err)
			}
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

func RespondWithError(w http.ResponseWriter, logger logs.Logger, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(MessageResponse{Message: message}); err != nil {
		if logger != nil {
			logger.Error("failed to encode error response", "error", err)
		}
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

func CheckContext(ctx context.Context, logger logs.Logger) bool {
	if ctx.Err() != nil {
		if logger != nil {
			logger.Error(ReqCancelledMsg, "error", ctx.Err())
		}
		return false
	}
	return true
}
