package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-api/internal/dto"
	"github.com/finbook/finbook-api/internal/errs"
	"github.com/finbook/finbook-api/internal/middleware"
	"github.com/finbook/finbook-api/internal/models"
	"github.com/finbook/finbook-api/internal/response"
)

type authService interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

type authHandlers struct {
	ResponseHandler response.ResponseHandler
	AuthSvc         authService
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{
		ResponseHandler: deps.ResponseHandler,
		AuthSvc:         deps.AuthSvc,
	}
}

func (h *authHandlers) AuthRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
	return r
}

// Login verifies the credentials and sets the Authentication cookie. The
// cookie expiry matches the token expiry.
func (h *authHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var body dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	token, expires, err := h.AuthSvc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
	})

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"message": "Login successful"})
}

// Logout clears the cookie. The token itself stays valid until expiry;
// there is no server-side revocation.
func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *authHandlers) Me(w http.ResponseWriter, r *http.Request) {
	payload := models.TokenPayload{
		ID:    middleware.UID(r.Context()),
		Email: middleware.Email(r.Context()),
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, payload)
}
