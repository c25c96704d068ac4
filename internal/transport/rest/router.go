package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/bizexpense/expense-manager/internal/catalog"
	"github.com/bizexpense/expense-manager/internal/expense"
	"github.com/bizexpense/expense-manager/internal/role"
	"github.com/bizexpense/expense-manager/internal/transport/middleware"
	"github.com/bizexpense/expense-manager/internal/transport/swagger"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, expenseHandler *expense.Handler, catalogHandler *catalog.Handler, roleHandler *role.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Catalog routes (static data, no auth)
		if catalogHandler != nil {
			r.Get("/categories", catalogHandler.GetCatalog)
			r.Get("/roles", catalogHandler.GetRoles)
		}

		// Active role selector
		if roleHandler != nil {
			r.Put("/role", roleHandler.SelectRole)
		}

		// Expense routes
		if expenseHandler != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.CreateExpense) // POST /expenses
				er.Get("/", expenseHandler.ListExpenses)   // GET /expenses
			})
		}
	})
}
