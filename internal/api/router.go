package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wealthwise/wealthwise-backend/internal/api/handlers"
	"github.com/wealthwise/wealthwise-backend/internal/auth"
	"github.com/wealthwise/wealthwise-backend/internal/config"
	"github.com/wealthwise/wealthwise-backend/internal/middleware"
	"github.com/wealthwise/wealthwise-backend/internal/models"
)

type Deps struct {
	Cfg       config.Config
	TM        *auth.TokenManager
	Auth      *handlers.AuthHandler
	Profile   *handlers.ProfileHandler
	Txns      *handlers.TransactionHandler
	Budgets   *handlers.BudgetHandler
	Goals     *handlers.GoalHandler
	Dashboard *handlers.DashboardHandler
	Admin     *handlers.AdminHandler
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	authed := middleware.NewAuthMiddleware(d.TM)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", d.Auth.Register)
		r.Post("/auth/login", d.Auth.Login)
		r.Post("/auth/refresh", d.Auth.Refresh)

		// everything below needs a valid access token
		r.Group(func(r chi.Router) {
			r.Use(authed.Auth)

			r.Get("/profile", d.Profile.Get)
			r.Put("/profile", d.Profile.Put)

			r.Get("/transactions", d.Txns.List)
			r.Post("/transactions", d.Txns.Create)
			r.Get("/transactions/{id}", d.Txns.Get)
			r.Put("/transactions/{id}", d.Txns.Update)
			r.Delete("/transactions/{id}", d.Txns.Delete)

			r.Get("/budgets/{year}/{month}", d.Budgets.Get)
			r.Put("/budgets/{year}/{month}", d.Budgets.Put)

			r.Get("/goals", d.Goals.List)
			r.Post("/goals", d.Goals.Create)
			r.Put("/goals/{id}", d.Goals.Update)
			r.Delete("/goals/{id}", d.Goals.Delete)

			r.Get("/balance/live", d.Dashboard.LiveBalance)
			r.Get("/insights", d.Dashboard.Insights)
			r.Post("/restore", d.Dashboard.Restore)
			r.Get("/payments/upi-link", d.Dashboard.UPILink)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/users", d.Admin.ListUsers)
				r.Delete("/users/{id}", d.Admin.DeleteUser)
				r.Get("/categories", d.Admin.ListCategories)
				r.Post("/categories", d.Admin.CreateCategory)
				r.Delete("/categories/{id}", d.Admin.DeleteCategory)
			})
		})
	})

	return r
}
