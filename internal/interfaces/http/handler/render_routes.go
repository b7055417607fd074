package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/docgen/backend/internal/interfaces/http/router"
)

// RenderRoutes creates the route group for rendering endpoints
func RenderRoutes(handler *RenderHandler, actorMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("render", "/render")
	group.Use(actorMiddleware)

	group.POST("/mail-merge", handler.MailMerge)
	group.POST("/mass", handler.MassRender)
	group.POST("/:entity_type/:id", handler.RenderRecord)

	return group
}

// ArtifactRoutes creates the route group for stored document endpoints
func ArtifactRoutes(handler *RenderHandler, actorMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("artifacts", "/artifacts")
	group.Use(actorMiddleware)

	group.GET("/:id", handler.GetArtifact)
	group.GET("/:id/download", handler.DownloadArtifact)

	return group
}

// TemplateRoutes creates the route group for template management endpoints
func TemplateRoutes(handler *TemplateHandler, actorMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("templates", "/templates")
	group.Use(actorMiddleware)

	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.DELETE("/:id", handler.Delete)

	return group
}
