package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook-api/internal/dto"
	"github.com/finbook/finbook-api/internal/errs"
	"github.com/finbook/finbook-api/internal/models"
	"github.com/finbook/finbook-api/pkg/logger"
)

const defaultListAllLimit = 10

type transactionStore interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, ownerID, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, ownerID, id string, fields map[string]any) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) (*models.Transaction, error)
	FilterByCategory(ctx context.Context, ownerID, category string) ([]models.Transaction, error)
	ListAll(ctx context.Context, limit int32, startKey string) ([]models.Transaction, string, error)
}

type transactionService struct {
	Store transactionStore
}

func NewTransactionService(store transactionStore) *transactionService {
	return &transactionService{
		Store: store,
	}
}

// Create persists a new transaction under ownerID. The owner and both
// timestamps are always server-set; nothing from the request body can
// address another user's partition.
func (s *transactionService) Create(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return nil, errs.NewValidationError("owner id is required")
	}
	if req.Type == "" {
		return nil, errs.NewValidationError("type is required")
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Type:      req.Type,
		Amount:    req.Amount,
		Category:  req.Category,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.CreateTransaction(ctx, tx); err != nil {
		log.Error("failed to create transaction in store", "error", err)
		return nil, errs.NewDatabaseError("CreateTransaction", err)
	}

	log.Info("transaction created", "transaction_id", tx.ID)
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return nil, errs.NewValidationError("owner id is required")
	}

	txs, err := s.Store.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list transactions", "error", err)
		return nil, errs.NewDatabaseError("ListByOwner", err)
	}
	return txs, nil
}

func (s *transactionService) Get(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" || id == "" {
		return nil, errs.NewValidationError("owner id and transaction id are required")
	}

	tx, err := s.Store.GetTransaction(ctx, ownerID, id)
	if err != nil {
		log.Error("failed to get transaction", "error", err)
		return nil, errs.NewDatabaseError("GetTransaction", err)
	}
	if tx == nil {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	return tx, nil
}

// Update merges only the supplied fields and refreshes updatedAt. A miss
// surfaces as not-found and writes nothing.
func (s *transactionService) Update(ctx context.Context, ownerID, id string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" || id == "" {
		return nil, errs.NewValidationError("owner id and transaction id are required")
	}

	fields := map[string]any{}
	if req.Type != nil {
		if *req.Type == "" {
			return nil, errs.NewValidationError("type cannot be empty")
		}
		fields["type"] = *req.Type
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	fields["updatedAt"] = time.Now()

	tx, err := s.Store.UpdateTransaction(ctx, ownerID, id, fields)
	if err != nil {
		log.Error("failed to update transaction", "error", err)
		return nil, errs.NewDatabaseError("UpdateTransaction", err)
	}
	if tx == nil {
		return nil, errs.NewNotFoundError("transaction not found")
	}

	log.Info("transaction updated", "transaction_id", id)
	return tx, nil
}

// Delete removes the record and returns it.
func (s *transactionService) Delete(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" || id == "" {
		return nil, errs.NewValidationError("owner id and transaction id are required")
	}

	tx, err := s.Store.DeleteTransaction(ctx, ownerID, id)
	if err != nil {
		log.Error("failed to delete transaction", "error", err)
		return nil, errs.NewDatabaseError("DeleteTransaction", err)
	}
	if tx == nil {
		return nil, errs.NewNotFoundError("transaction not found")
	}

	log.Info("transaction deleted", "transaction_id", id)
	return tx, nil
}

func (s *transactionService) FilterByCategory(ctx context.Context, ownerID, category string) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return nil, errs.NewValidationError("owner id is required")
	}
	if category == "" {
		return nil, errs.NewValidationError("category is required")
	}

	txs, err := s.Store.FilterByCategory(ctx, ownerID, category)
	if err != nil {
		log.Error("failed to filter transactions", "error", err)
		return nil, errs.NewDatabaseError("FilterByCategory", err)
	}
	return txs, nil
}

// ListAll pages through every owner's records. Administrative; not
// exposed on the HTTP surface.
func (s *transactionService) ListAll(ctx context.Context, limit int32, startKey string) ([]models.Transaction, string, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = defaultListAllLimit
	}

	txs, nextKey, err := s.Store.ListAll(ctx, limit, startKey)
	if err != nil {
		log.Error("failed to list all transactions", "error", err)
		return nil, "", errs.NewDatabaseError("ListAll", err)
	}
	return txs, nextKey, nil
}
