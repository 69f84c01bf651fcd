package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/radionovroman/tic-tac-toe-backend/internal/auth"
)

type RouterConfig struct {
	Users    *UserHandler
	Images   *ImagesHandler
	Share    *ShareHandler
	GameData *GameDataHandler
	Tokens   *auth.Tokens
	// APIRateLimit is requests per minute per IP+endpoint on the /api
	// subtree; zero disables limiting (tests).
	APIRateLimit int
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/register", cfg.Users.Register)
	r.Post("/login", cfg.Users.Login)
	r.Post("/logout", cfg.Users.Logout)

	r.Post("/auth/{provider}", cfg.Users.BeginOAuth)
	r.Get("/auth/{provider}/callback", cfg.Users.OAuthCallback)
	r.Post("/logout/{provider}", cfg.Users.OAuthLogout)

	r.Get("/share/{token}", cfg.Share.SharedCustomization)

	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(cfg.Tokens))
		r.Get("/game-data", cfg.GameData.Get)
		r.Get("/game-data/shared/{token}", cfg.GameData.Get)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireUser(cfg.Tokens))
		if cfg.APIRateLimit > 0 {
			r.Use(httprate.Limit(
				cfg.APIRateLimit,
				1*time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
			))
		}
		r.Get("/current_user", cfg.Users.CurrentUser)
		r.Post("/images", cfg.Images.Submit)
		r.Get("/images", cfg.Images.List)
		r.Post("/generate-share-link", cfg.Share.Generate)
	})

	return r
}
