package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"birdsong-backend/internal/handlers"
	"birdsong-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	birdHandler *handlers.BirdHandler,
	quizHandler *handlers.QuizHandler,
	userHandler *handlers.UserHandler,
	frontendURL string,
	authRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	authLimiter := middleware.NewRateLimiter(authRateLimit, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Bird Catalog Routes ────
		r.Route("/birds", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", birdHandler.List)
			r.Get("/random", birdHandler.Random)
		})

		// ──── Quiz Session Routes ────
		r.Route("/quiz-sessions", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/start", quizHandler.Start)
			r.Get("/", quizHandler.List)
			r.Get("/{id}", quizHandler.Get)
			r.Get("/{id}/answers", quizHandler.GetAnswers)
			r.Post("/{id}/answers", quizHandler.SubmitAnswer)
			r.Post("/{id}/finish", quizHandler.Finish)
		})

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
		})
	})

	return r
}
