package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type CorsHandler struct {
	origins []string
}

func NewCorsHandler(origins []string) *CorsHandler {
	return &CorsHandler{origins: origins}
}

func (h *CorsHandler) CorsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}

	allowAll := len(h.origins) == 0
	for _, o := range h.origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = h.origins
	}
	return cors.New(config)
}
