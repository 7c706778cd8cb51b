package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-market/marketplace-service/internal/api/http/handlers"
	"github.com/campus-market/marketplace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Users             *handlers.UsersHandler
	Posts             *handlers.PostsHandler
	Roommates         *handlers.RoommatesHandler
	Search            *handlers.SearchHandler
	Trades            *handlers.TradesHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Post("/logout", cfg.SessionMiddleware.Handle, cfg.Users.Logout)

	api := app.Group("/api")

	api.Get("/search", cfg.Search.Search)

	api.Post("/posts", cfg.SessionMiddleware.Optional, cfg.Posts.CreatePost)
	api.Get("/posts", cfg.Posts.ListPosts)
	api.Get("/posts/:id", cfg.Posts.GetPost)
	api.Delete("/posts/:id", cfg.SessionMiddleware.Handle, cfg.Posts.DeletePost)

	// roommate creation tolerates an absent session; the listing is stored
	// with an empty author reference
	api.Post("/roommates", cfg.SessionMiddleware.Optional, cfg.Roommates.CreateRoommate)
	api.Get("/roommates", cfg.Roommates.ListRoommates)
	api.Get("/roommates/:id", cfg.Roommates.GetRoommate)

	api.Post("/trades", cfg.SessionMiddleware.Handle, cfg.Trades.CreateTrade)

	users := api.Group("/users", cfg.SessionMiddleware.Handle)
	users.Get("/profile", cfg.Users.GetProfile)
	users.Put("/profile", cfg.Users.UpdateProfile)
	users.Get("/profile/posts", cfg.Posts.ListMyPosts)
	users.Get("/profile/trades", cfg.Trades.ListMyTrades)
}
