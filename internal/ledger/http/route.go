package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	// === Public Routes ===
	group.GET("/:id/availability/:month", h.GetMonth)

	// === Admin Routes ===
	group.PUT("/:id/availability", authMiddleware, adminMiddleware, h.Override)
}
