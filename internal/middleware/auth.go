package middleware

import (
	"context"
	"net/http"

	"github.com/finbook/finbook-api/internal/models"
	"github.com/finbook/finbook-api/internal/response"
)

// CookieName is the cookie carrying the identity token.
const CookieName = "Authentication"

type tokenVerifier interface {
	Verify(tokenStr string) (*models.TokenPayload, error)
}

type Middleware struct {
	Tokens          tokenVerifier
	ResponseHandler response.ResponseHandler
	// Anonymous lists the exact paths that skip token verification.
	// A static table, consulted before any token work.
	Anonymous map[string]struct{}
}

func NewMiddleware(tokens tokenVerifier, rh response.ResponseHandler, anonymous []string) *Middleware {
	anon := make(map[string]struct{}, len(anonymous))
	for _, path := range anonymous {
		anon[path] = struct{}{}
	}
	return &Middleware{
		Tokens:          tokens,
		ResponseHandler: rh,
		Anonymous:       anon,
	}
}

// context keys
type contextKey string

const UIDKey contextKey = "uid"
const EmailKey contextKey = "email"

// Authenticate guards every route. Anonymous routes pass through
// untouched, even when the request carries a malformed token. Everything
// else needs a valid Authentication cookie, whose payload becomes the
// request's identity.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.Anonymous[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(CookieName)
		if err != nil {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "Authentication token is missing")
			return
		}

		payload, err := m.Tokens.Verify(cookie.Value)
		if err != nil {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UIDKey, payload.ID)
		ctx = context.WithValue(ctx, EmailKey, payload.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

// Helper to extract the authenticated email
func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}
