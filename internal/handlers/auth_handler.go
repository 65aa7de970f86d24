package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/sonuudigital/storefront/internal/auth"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/web"
)

// AuthHandler signs the single configured admin into the dashboard. There is
// no user registration; the storefront itself is anonymous.
type AuthHandler struct {
	logger            logs.Logger
	jwtManager        *auth.JWTManager
	adminEmail        string
	adminPasswordHash string
}

func NewAuthHandler(logger logs.Logger, jwtManager *auth.JWTManager, adminEmail, adminPasswordHash string) *AuthHandler {
	return &AuthHandler{
		logger:            logger,
		jwtManager:        jwtManager,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidRequestBodyMsg)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)

	if !strings.EqualFold(req.Email, h.adminEmail) {
		h.logger.Warn("login attempt with unknown email")
		web.RespondWithError(w, h.logger, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, h.adminPasswordHash)
	if err != nil || !match {
		h.logger.Warn("login attempt with wrong password")
		web.RespondWithError(w, h.logger, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	token, err := h.jwtManager.GenerateToken("admin", h.adminEmail, auth.RoleAdmin)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, LoginResponse{
		Email: h.adminEmail,
		Role:  auth.RoleAdmin,
		Token: token,
	})
}
