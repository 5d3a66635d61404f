package router // package router defines how HTTP routes are registered for the app

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/videogamed/videogamed/internal/config"     // cache and rate limit configuration
	"github.com/videogamed/videogamed/internal/handler"    // import the handlers that implement business logic
	"github.com/videogamed/videogamed/internal/middleware" // import middleware for sessions, caching and rate limiting
	"github.com/videogamed/videogamed/internal/session"    // session registry backing the auth middleware
)

// Handlers bundles everything route registration needs.
type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Game   *handler.GameHandler
	Review *handler.ReviewHandler
	Tag    *handler.TagHandler
}

// RegisterRoutes registers every route on the provided Echo instance.
//
// Route precedence matters in two places: /games/like/:reviewId is a static
// segment under /games and must not be swallowed by /games/:gameId, and
// /profile must coexist with /profile/:userId. Echo matches static segments
// before parameters, so both pairs resolve correctly.
func RegisterRoutes(e *echo.Echo, h Handlers, sessions *session.Store, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Public browse pages. The landing and catalogue pages are identical for
	// every anonymous viewer, so they sit behind the response cache.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/", h.Game.Home, cache)
	e.GET("/home", h.Game.Home, cache)
	e.GET("/games", h.Game.List, cache)
	e.POST("/search", h.Game.Search)
	e.GET("/games/:gameId", h.Game.Show)

	// Account forms and credential endpoints. Login and registration take
	// the brunt of password guessing, so they get the rate limiter.
	limit := middleware.NewFixedWindow(config.LoadRateLimitConfig(), rdb)
	e.GET("/register", h.Auth.GetRegistrationForm)
	e.POST("/users", h.User.Create, limit)
	e.GET("/login", h.Auth.GetLoginForm)
	e.POST("/login", h.Auth.Login, limit)
	e.GET("/logout", h.Auth.Logout)

	// Everything below requires an authenticated session.
	auth := middleware.RequireUser(sessions)

	// Per-user game lists.
	e.GET("/wishlist", h.Game.Wishlist, auth)
	e.POST("/wishlist", h.Game.AddToWishlist, auth)
	e.DELETE("/wishlist/:gameId", h.Game.RemoveFromWishlist, auth)
	e.GET("/played", h.Game.Played, auth)
	e.POST("/played", h.Game.MarkPlayed, auth)
	e.DELETE("/played/:gameId", h.Game.RemovePlayed, auth)

	// Reviews, likes and tags.
	e.GET("/review", h.Review.Form, auth)
	e.POST("/review", h.Review.Create, auth)
	e.POST("/games/like/:reviewId", h.Review.Like, auth)
	e.POST("/games/:gameId", h.Tag.Attach, auth)

	// Profiles and account settings.
	e.GET("/profile", h.User.Profile, auth)
	e.GET("/profile/:userId", h.User.Profile, auth)
	e.GET("/updateUsername", h.User.UsernameForm, auth)
	e.POST("/updateUsername", h.User.UpdateUsername, auth)
	e.GET("/updatePfp", h.User.PfpForm, auth)
	e.POST("/updatePfp", h.User.UpdatePfp, auth)
}
