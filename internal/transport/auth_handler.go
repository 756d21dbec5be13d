package transport

import (
	"net/http"

	"github.com/nuttaponsrpn/Kiki-POS/internal/middleware"
	"github.com/nuttaponsrpn/Kiki-POS/internal/service"
	"github.com/nuttaponsrpn/Kiki-POS/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the established session and the post-login route
type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

// AuthHandler handles HTTP requests for login and logout
type AuthHandler struct {
	authService service.AuthService
	codec       *session.Codec
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, codec *session.Codec, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		codec:       codec,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, rateLimiter func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(rateLimiter).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}

// Login verifies the credential pair and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		h.logger.Debug("Login failed", zap.String("username", req.Username))
		middleware.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.codec.Write(w, sess); err != nil {
		h.logger.Error("Failed to write session cookie", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("User logged in",
		zap.String("username", sess.Username),
		zap.String("role", string(sess.Role)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		Username: sess.Username,
		Role:     string(sess.Role),
		Redirect: "/",
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.codec.Clear(w)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"redirect": "/login"})
}
