package api

import (
	"net/http"
	"time"

	"isiboard/internal/api/handler"
	"isiboard/internal/api/middleware"
	"isiboard/internal/app/service"
	"isiboard/internal/app/view"
	"isiboard/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authService *service.AuthService,
	dashboardService *service.DashboardService,
	challengeService *service.ChallengeService,
	quizService *service.QuizService,
	leaderboardService *service.LeaderboardService,
	filesService *service.FilesService,
	controller *view.Controller,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup
	// Verifies the "Authorization: Bearer T" token and puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check and Prometheus scrape endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Everything else is the admin dashboard surface.
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.Authenticator)
			admin.Use(middleware.AdminOnly)

			dashboardHandler := handler.NewDashboardHandler(dashboardService, controller)
			admin.Route("/dashboard", dashboardHandler.RegisterRoutes)

			challengeHandler := handler.NewChallengeHandler(challengeService)
			admin.Route("/challenges", challengeHandler.RegisterRoutes)
			admin.Route("/editor", challengeHandler.RegisterEditorRoutes)

			quizHandler := handler.NewQuizHandler(quizService)
			admin.Route("/quizzes", quizHandler.RegisterRoutes)

			leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
			admin.Route("/leaderboards", leaderboardHandler.RegisterRoutes)

			filesHandler := handler.NewFilesHandler(filesService)
			admin.Route("/students", filesHandler.RegisterRoutes)
		})
	})

	return r
}
