package handlers

import (
	"log/slog"

	"github.com/finbook/finbook-api/internal/response"
	"github.com/finbook/finbook-api/internal/token"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Tokens          *token.Service
	AuthSvc         authService
	UserSvc         userService
	TransactionSvc  transactionService
}
