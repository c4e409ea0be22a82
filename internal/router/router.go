package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/finbook/finbook-api/internal/handlers"
	"github.com/finbook/finbook-api/internal/middleware"
)

// AnonymousRoutes lists the paths the auth guard passes through without
// touching the token.
var AnonymousRoutes = []string{
	"/auth/login",
	"/users/create",
	"/users",
}

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	logMw := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(logMw.LoggerMiddleware)

	authMw := middleware.NewMiddleware(deps.Tokens, deps.ResponseHandler, AnonymousRoutes)
	r.Use(authMw.Authenticate)

	ah := handlers.NewAuthHandlers(deps)
	ush := handlers.NewUserHandlers(deps)
	th := handlers.NewTransactionHandlers(deps)
	ph := handlers.NewProtectedHandlers(deps)

	r.Mount("/auth", ah.AuthRoutes())
	r.Mount("/users", ush.UserRoutes())
	r.Mount("/transactions", th.TransactionRoutes())
	r.Mount("/protected", ph.ProtectedRoutes())
	return r
}
