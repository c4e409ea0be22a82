package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/finbook/finbook-api/internal/bootstrap"
	"github.com/finbook/finbook-api/internal/config"
	"github.com/finbook/finbook-api/internal/handlers"
	"github.com/finbook/finbook-api/internal/response"
	"github.com/finbook/finbook-api/internal/router"
	"github.com/finbook/finbook-api/internal/services"
	"github.com/finbook/finbook-api/internal/store"
	"github.com/finbook/finbook-api/internal/token"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	_ = godotenv.Load()
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)

	// tokens
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiration)

	// stores
	ustore := store.NewUserStore(bs.Dynamo, cfg.UsersTable)
	tstore := store.NewTransactionStore(bs.Dynamo, cfg.TransactionsTable)

	// services
	userv := services.NewUserService(ustore)
	aserv := services.NewAuthService(ustore, tokens)
	tserv := services.NewTransactionService(tstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Tokens = tokens
	deps.AuthSvc = aserv
	deps.UserSvc = userv
	deps.TransactionSvc = tserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
