package router

import (
	"net/http"
	"predictions-api/config"
	"predictions-api/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"
)

func NewRouter(authHandler *handler.AuthHandler, leagueHandler *handler.LeagueHandler, profileHandler *handler.ProfileHandler, authMiddleware *handler.AuthMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.Server.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(authMiddleware.Authenticate)

	r.Get("/health", handler.HealthCheck)
	r.Get("/swagger/*", httpSwagger.Handler())

	// Credential endpoints get a per-IP limiter: 10 requests burst, 1/s refill.
	limiter := handler.NewRateLimiter(rate.Limit(1), 10)
	r.Route("/auth", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/register", handler.ErrorHandlingMiddleware(authHandler.Register))
		r.Post("/login", handler.ErrorHandlingMiddleware(authHandler.Login))
		r.Post("/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
		r.Post("/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))
		r.Post("/send-verify-otp", handler.ErrorHandlingMiddleware(authHandler.SendVerifyOtp))
		r.Post("/verify-otp", handler.ErrorHandlingMiddleware(authHandler.VerifyOtp))
	})

	r.Group(func(r chi.Router) {
		r.Use(handler.RequireAuth)

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", handler.ErrorHandlingMiddleware(leagueHandler.GetLeaguesForUser))
			r.Post("/", handler.ErrorHandlingMiddleware(leagueHandler.CreateLeague))
			r.Get("/{uuid}", handler.ErrorHandlingMiddleware(leagueHandler.GetStandings))
			r.Post("/public/{uuid}/join", handler.ErrorHandlingMiddleware(leagueHandler.JoinPublicLeague))
			r.Post("/private/{code}/join", handler.ErrorHandlingMiddleware(leagueHandler.JoinPrivateLeague))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/home", handler.ErrorHandlingMiddleware(profileHandler.Home))
			r.Post("/reset-password", handler.ErrorHandlingMiddleware(profileHandler.ResetPassword))
			r.Post("/change-password", handler.ErrorHandlingMiddleware(profileHandler.ChangePassword))
		})
	})

	return r
}
