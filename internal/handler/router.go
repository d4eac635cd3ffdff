package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter registers every route of the API
func NewRouter(sessions *SessionHandler, maps *MapHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", Health)

	r.POST("/sessions", sessions.Create)
	r.DELETE("/sessions/:id", sessions.Delete)
	r.POST("/sessions/:id/location", sessions.UpdateLocation)
	r.POST("/sessions/:id/refresh", sessions.Refresh)
	r.GET("/sessions/:id/shops", sessions.Shops)
	r.POST("/sessions/:id/shops/:index/route", sessions.SelectShop)

	r.GET("/sessions/:id/map", maps.Snapshot)
	r.GET("/sessions/:id/map/geojson", maps.GeoJSON)
	r.GET("/sessions/:id/events", maps.Events)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
