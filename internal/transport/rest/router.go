package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/frahmantamala/employee-management/internal/transport/swagger"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Employee *employee.Handler
	Health   *HealthHandler
}

type RouterOptions struct {
	AllowedOrigins string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

func NewRouter(h Handlers, opts RouterOptions) *chi.Mux {
	router := chi.NewRouter()
	RegisterAllRoutes(router, h, opts)
	return router
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts RouterOptions) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	router.Get(swagger.SpecPath, swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	if h.Health != nil {
		router.Get("/health", h.Health.Health)
		router.Get("/ping", h.Health.Ping)
	}

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.AuthMiddleware)

		pr.Get("/users/me", h.User.GetCurrentUser)
		pr.With(auth.RequireAdmin()).Get("/users", h.User.ListUsers)

		pr.Route("/employees", func(er chi.Router) {
			er.Post("/", h.Employee.CreateEmployee)
			er.Get("/", h.Employee.ListEmployees)
			er.Get("/{id}", h.Employee.GetEmployee)
			er.Put("/{id}", h.Employee.UpdateEmployee)
			er.Delete("/{id}", h.Employee.DeleteEmployee)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		status, body := internal.NewNotFoundError("Route not found", "ROUTE_NOT_FOUND").ToHTTPResponse()
		writeJSON(w, status, body)
	})
}
