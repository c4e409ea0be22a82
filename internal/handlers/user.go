package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-api/internal/dto"
	"github.com/finbook/finbook-api/internal/errs"
	"github.com/finbook/finbook-api/internal/models"
	"github.com/finbook/finbook-api/internal/response"
)

type userService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         userService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/create", h.CreateUser)
	r.Get("/", h.ListUsers)
	return r
}

func (h *userHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	user, err := h.UserSvc.Register(r.Context(), body.Email, body.Password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, map[string]any{
		"message":      "User created successfully",
		"user":         user,
		"unauthorized": true,
	})
}

func (h *userHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, users)
}
