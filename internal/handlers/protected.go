package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-api/internal/response"
)

type protectedHandlers struct {
	ResponseHandler response.ResponseHandler
}

func NewProtectedHandlers(deps *Deps) *protectedHandlers {
	return &protectedHandlers{
		ResponseHandler: deps.ResponseHandler,
	}
}

func (h *protectedHandlers) ProtectedRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Protected)
	return r
}

func (h *protectedHandlers) Protected(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"message": "This is protected content"})
}
