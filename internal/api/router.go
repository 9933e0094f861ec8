package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"greenpoints-backend/config"
	"greenpoints-backend/internal/mw"
	"greenpoints-backend/internal/store"
	"greenpoints-backend/internal/web"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(web.MustTemplates())

	responseCache := mw.NewResponseCache(cfg.Server.CacheTTL)
	handler := NewHandler(s, responseCache, cfg)

	// Disabled when rate_limit_per_sec is not positive.
	r.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))

	requireUser := mw.RequireUser(s, cfg.Session.CookieName)
	caching := responseCache.Middleware()

	r.GET("/", handler.Index)
	r.GET("/dashboard", requireUser, handler.Dashboard)
	r.GET("/healthz", handler.Healthz)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.GET("/logout", handler.Logout)
	}

	api := r.Group("/api")
	{
		api.GET("/dorms", caching, handler.GetDorms)
		api.GET("/action-types", handler.GetActionTypes)

		api.GET("/me", requireUser, handler.GetMe)
		api.GET("/actions", requireUser, handler.GetActions)
		api.PUT("/actions/:id", requireUser, handler.UpdateAction)
		api.DELETE("/actions/:id", requireUser, handler.DeleteAction)
	}

	fragments := r.Group("/fragments")
	{
		fragments.GET("/leaderboard", caching, handler.LeaderboardFragment)

		fragments.POST("/actions/log", requireUser, handler.LogActionFragment)
		fragments.GET("/actions/:id/edit", requireUser, handler.EditActionFragment)
		fragments.PUT("/actions/:id", requireUser, handler.UpdateActionFragment)
		fragments.DELETE("/actions/:id", requireUser, handler.DeleteActionFragment)
	}

	return r
}
