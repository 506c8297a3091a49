package app

import (
	"net/http"
	"time"

	"accounts/internal/app/deps"
	"accounts/internal/app/services"
	loginwithemail "accounts/internal/http/handlers/auth/log_in_with_email"
	resetpassword "accounts/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "accounts/internal/http/handlers/auth/send_password_reset_token"
	signup "accounts/internal/http/handlers/auth/sign_up"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signup.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Mount("/auth", authRouter)

	return &http.Server{
		Handler:           router,
		Addr:              deps.Config.Address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       5 * time.Second,
	}
}
