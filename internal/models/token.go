package models

// TokenPayload is the identity carried inside a signed token. It is
// reconstructed from the token on every request, never persisted.
type TokenPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
