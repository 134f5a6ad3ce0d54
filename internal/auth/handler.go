package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/transport"
	"github.com/lawateaditya/Stock-Management/pkg/logger"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, string, error)
	Login(dto LoginDTO) (*User, string, error)
	FederatedLogin(ctx context.Context, sessionID string) (*User, *Session, error)
	ResolveCredentials(sessionToken, bearerToken string) (*User, error)
	Logout(sessionToken string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	user, token, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	user, token, err := h.Service.Login(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// SessionData completes the federated OAuth flow: it verifies the
// X-Session-ID with the provider, upserts the user and plants the
// session cookie.
func (h *Handler) SessionData(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		h.HandleServiceError(w, internal.NewValidationError("X-Session-ID header is required", internal.ErrCodeMissingSessionID))
		return
	}

	user, session, err := h.Service.FederatedLogin(r.Context(), sessionID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.SessionToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	h.WriteJSON(w, http.StatusOK, user)
}

// Me returns the identity the middleware resolved for this request.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}
	h.WriteJSON(w, http.StatusOK, user)
}

// Logout drops the server-side session and expires the cookie. It is
// idempotent: logging out without a session cookie still succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var sessionToken string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		sessionToken = cookie.Value
	}

	if err := h.Service.Logout(sessionToken); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Authenticate resolves the request identity and stores it in the
// context. The session cookie wins over the bearer token; a dead session
// falls back to the token without surfacing an error.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionToken string
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			sessionToken = cookie.Value
		}
		bearerToken := h.ExtractTokenFromHeader(r)

		user, err := h.Service.ResolveCredentials(sessionToken, bearerToken)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		ctx := ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
