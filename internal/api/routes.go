package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, middleware ...gin.HandlerFunc) {
	router.GET("/healthz", handler.Health)

	api := router.Group("/api", middleware...)
	{
		api.GET("/listings", handler.GetListings)
		api.GET("/listings/:id", handler.GetListing)
		api.GET("/map-listings", handler.GetMapListings)
		api.GET("/filters", handler.GetFilters)
		api.GET("/micromarkets/hulls", handler.GetMicromarketHulls)
		api.GET("/cities", handler.GetCities)
		api.GET("/cities/:name", handler.GetCity)
	}
}
