package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/handlers"
	"github.com/LovationAdmin/giftfinder-api/middleware"
	"github.com/LovationAdmin/giftfinder-api/services"
)

const Version = "1.0.0"

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Config  config.Config
	Service *services.GiftSearchService
	WS      *handlers.WSHandler
	Auth    *middleware.Authenticator
}

// NewRouter builds the engine with its middleware stack and every route.
// Background middleware work stops when ctx is cancelled.
func NewRouter(ctx context.Context, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.Config.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimiter(ctx, deps.Config.RateLimitPerMinute))

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("/")
		public.Use(deps.Auth.OptionalAuth())
		SetupGiftRoutes(public, deps.Service)

		protected := v1.Group("/")
		protected.Use(deps.Auth.RequireAuth())
		SetupHistoryRoutes(protected, deps.Service)
		if deps.WS != nil {
			protected.GET("/ws/searches", deps.WS.HandleWS)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "healthy",
			"version":           Version,
			"time":              time.Now().Format(time.RFC3339),
			"search_configured": deps.Service.Configured(),
			"history_enabled":   deps.Service.HistoryEnabled(),
		})
	})

	return router
}

// SetupGiftRoutes sets up the search routes, open to anonymous requesters.
func SetupGiftRoutes(rg *gin.RouterGroup, svc *services.GiftSearchService) {
	h := handlers.NewGiftSearchHandler(svc)

	rg.POST("/gifts/search", h.Search)
	rg.POST("/gifts/query", h.Query)
	rg.GET("/searches/:id", h.GetSearch)
}

// SetupHistoryRoutes sets up the requester's history and favorites.
func SetupHistoryRoutes(rg *gin.RouterGroup, svc *services.GiftSearchService) {
	h := handlers.NewGiftSearchHandler(svc)

	rg.GET("/searches", h.ListSearches)
	rg.GET("/favorites", h.ListFavorites)
	rg.POST("/favorites", h.AddFavorite)
	rg.DELETE("/favorites/:id", h.RemoveFavorite)
}
