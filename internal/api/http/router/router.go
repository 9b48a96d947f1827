package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/findoc-server/internal/api/http/handler"
	"github.com/dtroode/findoc-server/internal/api/http/middleware"
	"github.com/dtroode/findoc-server/internal/api/http/response"
	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
)

const corsMaxAge = 600

// Options holds the HTTP settings the router needs.
type Options struct {
	CORSAllowOrigins []string
	MaxUploadBytes   int64
}

// Router wires the HTTP API onto a chi mux.
type Router struct {
	authService    handler.AuthService
	financeService handler.FinanceService
	importService  handler.ImportService
	healthChecker  handler.HealthChecker
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	options        Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	financeService handler.FinanceService,
	importService handler.ImportService,
	healthChecker handler.HealthChecker,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		financeService: financeService,
		importService:  importService,
		healthChecker:  healthChecker,
		tokenService:   tokenService,
		contextManager: contextManager,
		options:        options,
		logger:         logger,
	}
}

// Register builds the handler tree:
//
//	GET  /health
//	POST /auth/register
//	POST /auth/login
//	GET  /v1/finance/me
//	PUT  /v1/finance/me
//	POST /v1/finance/me/import/incomes
func (r *Router) Register() http.Handler {
	validator := handler.NewValidator()
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, validator, r.logger)
	financeHandler := handler.NewFinance(r.financeService, r.importService, r.contextManager,
		validator, r.options.MaxUploadBytes, r.logger)
	healthHandler := handler.NewHealth(r.healthChecker, r.logger)

	mux := chi.NewRouter()
	mux.Use(
		chimw.RequestID,
		chimw.RealIP,
		logging.Handle,
		chimw.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   r.options.CORSAllowOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           corsMaxAge,
		}),
	)

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not Found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	mux.Get("/health", healthHandler.Check)

	mux.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", authHandler.Register)
		ar.Post("/login", authHandler.Login)
	})

	mux.Route("/v1/finance", func(fr chi.Router) {
		fr.Use(authenticate.Handle)
		fr.Get("/me", financeHandler.Get)
		fr.Put("/me", financeHandler.Put)
		fr.Post("/me/import/incomes", financeHandler.ImportIncomes)
	})

	return mux
}
