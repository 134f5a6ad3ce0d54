package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	"github.com/lawateaditya/Stock-Management/internal/catalog"
	"github.com/lawateaditya/Stock-Management/internal/ledger"
	"github.com/lawateaditya/Stock-Management/internal/stock"
	"github.com/lawateaditya/Stock-Management/internal/transport/middleware"
	"github.com/lawateaditya/Stock-Management/internal/transport/swagger"
	"github.com/lawateaditya/Stock-Management/internal/user"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, authHandler *auth.Handler, policy auth.Policy, userHandler *user.Handler, catalogHandler *catalog.Handler, ledgerHandler *ledger.Handler, stockHandler *stock.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware())
	if cfg.Observability.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.CORSMiddleware(cfg.Server.OriginList()))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	if cfg.Observability.Metrics.Enabled {
		metricsPath := cfg.Observability.Metrics.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		router.Handle(metricsPath, promhttp.Handler())
	}

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			// Auth routes
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", authHandler.Register)
				sr.Post("/login", authHandler.Login)
				sr.Get("/session-data", authHandler.SessionData)

				sr.Group(func(ar chi.Router) {
					ar.Use(authHandler.Authenticate)
					ar.Get("/me", authHandler.Me)
					ar.Post("/logout", authHandler.Logout)
				})
			})

			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.Authenticate)

				// User management routes; delete is narrowed further in the service
				if userHandler != nil {
					pr.Route("/users", func(ur chi.Router) {
						ur.Use(policy.RequireUserManagement())
						ur.Get("/", userHandler.ListUsers)
						ur.Post("/", userHandler.CreateUser)
						ur.Patch("/{user_id}", userHandler.UpdateUser)
						ur.Delete("/{user_id}", userHandler.DeleteUser)
					})
				}

				// Catalog routes: reads for any authenticated user, writes for admins
				if catalogHandler != nil {
					pr.Route("/items", func(ir chi.Router) {
						ir.Get("/", catalogHandler.GetItems)

						ir.Group(func(wr chi.Router) {
							wr.Use(policy.RequireCatalogWrite())
							wr.Post("/", catalogHandler.CreateItem)
							wr.Patch("/{item_code}", catalogHandler.UpdateItem)
							wr.Delete("/{item_code}", catalogHandler.DeleteItem)
						})
					})

					pr.Route("/suppliers", func(spr chi.Router) {
						spr.Get("/", catalogHandler.GetSuppliers)

						spr.Group(func(wr chi.Router) {
							wr.Use(policy.RequireCatalogWrite())
							wr.Post("/", catalogHandler.CreateSupplier)
							wr.Patch("/{supplier_id}", catalogHandler.UpdateSupplier)
							wr.Delete("/{supplier_id}", catalogHandler.DeleteSupplier)
						})
					})
				}

				// Ledger routes
				if ledgerHandler != nil {
					pr.Route("/inward", func(lr chi.Router) {
						lr.Use(policy.RequireInwardAccess())
						lr.Get("/", ledgerHandler.ListInward)
						lr.Post("/", ledgerHandler.CreateInward)
						lr.Delete("/{entry_id}", ledgerHandler.DeleteInward)
					})

					pr.Route("/issue", func(lr chi.Router) {
						lr.Use(policy.RequireIssueAccess())
						lr.Get("/", ledgerHandler.ListIssue)
						lr.Post("/", ledgerHandler.CreateIssue)
						lr.Delete("/{entry_id}", ledgerHandler.DeleteIssue)
					})
				}

				// Stock reporting routes
				if stockHandler != nil {
					pr.Route("/stock", func(str chi.Router) {
						str.Use(policy.RequireStockAccess())
						str.Get("/", stockHandler.GetStockStatement)
						str.Get("/export", stockHandler.ExportStockStatement)
					})
				}
			})
		}
	})
}
