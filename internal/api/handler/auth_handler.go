package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/config"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	cfg    config.AuthConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: l.With("component", "AuthHandler"),
		now:    time.Now,
	}
}

// GenerateBearerToken issues an HS256 token for the given username.
//
// @Summary Generate a JWT bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "username"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body", "error", err)
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err))
		return
	}

	if strings.TrimSpace(req.Username) == "" {
		respondError(w, r, apperrors.NewValidationError("username", "is required"))
		return
	}

	expiresAt := h.now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"sub": req.Username,
		"exp": expiresAt.Unix(),
		"iat": h.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to sign token", "error", err)
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInternalServer, err))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", "username", req.Username)
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: "Bearer " + tokenString, ExpiresAt: expiresAt.Unix()})
}
