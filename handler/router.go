package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/chatpdf/middleware"
)

// NewRouter wires the form page and the JSON API around one session.
func NewRouter(session SessionService, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(PageTemplate)

	pageHandler := NewPageHandler(session)
	router.GET("/", pageHandler.Index)
	router.POST("/process", pageHandler.Process)
	router.POST("/ask", pageHandler.Ask)

	apiHandler := NewAPIHandler(session)
	apiV1 := router.Group("/api/v1")
	apiV1.Use(NewCorsHandler(corsOrigins).CorsMiddleware())
	{
		apiV1.GET("/status", apiHandler.HandleStatus)
		apiV1.POST("/process", apiHandler.HandleProcess)
		apiV1.POST("/ask", middleware.RequireReady(session), apiHandler.HandleAsk)
	}
	return router
}
