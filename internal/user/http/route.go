package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/users")

	// === Public Routes ===
	group.POST("/register", h.Register)
	group.POST("/login", h.Login)

	// === Authenticated Routes ===
	group.GET("/me", authMiddleware, h.Me)
}
