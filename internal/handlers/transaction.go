package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-api/internal/dto"
	"github.com/finbook/finbook-api/internal/errs"
	"github.com/finbook/finbook-api/internal/middleware"
	"github.com/finbook/finbook-api/internal/models"
	"github.com/finbook/finbook-api/internal/response"
)

type transactionService interface {
	Create(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*models.Transaction, error)
	List(ctx context.Context, ownerID string) ([]models.Transaction, error)
	Get(ctx context.Context, ownerID, id string) (*models.Transaction, error)
	Update(ctx context.Context, ownerID, id string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Transaction, error)
	FilterByCategory(ctx context.Context, ownerID, category string) ([]models.Transaction, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/filter", h.Filter)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func (h *transactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.Create(r.Context(), uid, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	txs, err := h.TransactionSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	id := chi.URLParam(r, "id")

	tx, err := h.TransactionSvc.Get(r.Context(), uid, id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	id := chi.URLParam(r, "id")

	tx, err := h.TransactionSvc.Update(r.Context(), uid, id, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	id := chi.URLParam(r, "id")

	tx, err := h.TransactionSvc.Delete(r.Context(), uid, id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

// Filter returns the caller's transactions in a category. The owner is
// always the authenticated identity; a userId query parameter is ignored
// so no caller can read another user's partition.
func (h *transactionHandlers) Filter(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	category := r.URL.Query().Get("category")

	txs, err := h.TransactionSvc.FilterByCategory(r.Context(), uid, category)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}
