package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"expensemanager/internal/domain/user"
	"expensemanager/internal/shared/middleware"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID int64, username string) (string, error)
}

type AuthHandler struct {
	users    *user.Service
	tokens   TokenIssuer
	tokenTTL time.Duration
	log      logrus.FieldLogger
}

func NewAuthHandler(users *user.Service, tokens TokenIssuer, tokenTTL time.Duration, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, tokenTTL: tokenTTL, log: log}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleRegister creates a user account
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.WithField("user_id", u.ID).Info("User registered")
	writeJSON(w, http.StatusCreated, u)
}

// HandleLogin checks the credentials and issues an access token, both in the
// body and as an HttpOnly cookie
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	token, err := h.tokens.Generate(u.ID, u.Username)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.setAuthCookie(w, r, token)
	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// HandleLogout clears the auth cookie
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
}

// Only set the Secure flag when actually using HTTPS
func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
