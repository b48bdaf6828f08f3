package api

import (
	"net/http"
	"time"

	"cm_sheet/internal/api/handler"
	apiMiddleware "cm_sheet/internal/api/middleware"
	"cm_sheet/internal/common/security"
	"cm_sheet/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

type Services struct {
	Auth        handler.AuthService
	Board       handler.BoardService
	Progress    handler.ProgressService
	Sync        handler.SyncService
	Preferences handler.PreferencesService
}

func NewRouter(svc Services, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(apiMiddleware.Logging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Verifies a bearer token when present; routes that need one add
	// apiMiddleware.Authenticator.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth)
		v1.Route("/auth", authHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(svc.Board)
		v1.Group(problemHandler.RegisterRoutes)

		progressHandler := handler.NewProgressHandler(svc.Progress, svc.Sync)
		v1.Route("/progress", progressHandler.RegisterRoutes)

		prefsHandler := handler.NewPreferencesHandler(svc.Preferences)
		v1.Route("/preferences", prefsHandler.RegisterRoutes)
	})

	return r
}
