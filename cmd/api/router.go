package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kculture-backend/internal/shared/middleware"
	"kculture-backend/internal/shared/response"
	"kculture-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowedOrigins),
	)

	authed := middleware.AuthMiddleware(c.JWTManager)
	admin := middleware.AdminMiddleware()

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			response.ServiceUnavailable(ctx, err.Error())
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/refresh", c.AuthHandler.Refresh)
		auth.GET("/me", authed, c.AuthHandler.Me)

		roles := auth.Group("", authed, admin)
		{
			roles.POST("/promote/:id", c.AuthHandler.Promote)
			roles.POST("/demote/:id", c.AuthHandler.Demote)
			roles.POST("/deactivate/:id", c.AuthHandler.Deactivate)
		}
	}

	spots := v1.Group("/spots")
	{
		spots.GET("", c.SpotHandler.List)
		spots.GET("/featured", c.SpotHandler.Featured)
		spots.GET("/popular", c.SpotHandler.Popular)
		spots.GET("/search", c.SpotHandler.Search)
		spots.GET("/category/:category", c.SpotHandler.GetByCategory)
		spots.GET("/:id", c.SpotHandler.GetByID)

		spots.POST("", authed, admin, c.SpotHandler.Create)
		spots.PUT("/:id", authed, admin, c.SpotHandler.Update)
		spots.DELETE("/:id", authed, admin, c.SpotHandler.Delete)
	}

	contents := v1.Group("/contents")
	{
		contents.GET("", c.ContentHandler.List)
		contents.GET("/featured", c.ContentHandler.Featured)
		contents.GET("/popular", c.ContentHandler.Popular)
		contents.GET("/recent", c.ContentHandler.Recent)
		contents.GET("/search", c.ContentHandler.Search)
		contents.GET("/:id", c.ContentHandler.GetByID)
		contents.GET("/:id/spots", c.ContentHandler.GetSpots)

		contents.POST("", authed, admin, c.ContentHandler.Create)
		contents.PUT("/:id", authed, admin, c.ContentHandler.Update)
		contents.DELETE("/:id", authed, admin, c.ContentHandler.Delete)
		contents.POST("/:id/spots", authed, admin, c.ContentHandler.LinkSpot)
		contents.DELETE("/:id/spots/:spotId", authed, admin, c.ContentHandler.UnlinkSpot)
	}

	tours := v1.Group("/tours")
	{
		tours.GET("", c.TourHandler.List)
		tours.GET("/featured", c.TourHandler.Featured)
		tours.GET("/popular", c.TourHandler.Popular)
		tours.GET("/search", c.TourHandler.Search)
		tours.GET("/:id", c.TourHandler.GetByID)
		tours.GET("/:id/spots", c.TourHandler.GetSpots)

		tours.POST("", authed, admin, c.TourHandler.Create)
		tours.PUT("/:id", authed, admin, c.TourHandler.Update)
		tours.DELETE("/:id", authed, admin, c.TourHandler.Delete)
		tours.POST("/:id/spots", authed, admin, c.TourHandler.AddSpot)
		tours.PUT("/:id/spots/reorder", authed, admin, c.TourHandler.Reorder)
		tours.DELETE("/:id/spots/:spotId", authed, admin, c.TourHandler.RemoveSpot)
	}

	crawlerGroup := v1.Group("/crawler", authed, admin)
	{
		crawlerGroup.POST("/drama", c.CrawlerHandler.StartDrama)
		crawlerGroup.POST("/kpop", c.CrawlerHandler.StartKpop)
		crawlerGroup.GET("/status", c.CrawlerHandler.Status)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return router
}
