// Package catalog implements the generic dashboard module for one resource
// collection: list view, create, read-one, update, delete, and stats, all
// routed through the resource's store. The dashboard API is eight instances
// of this module, one per collection.
package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/edubridge/admingate/internal/store"
)

// Module wires one resource store to its dashboard routes.
type Module[T any] struct {
	handler *Handler[T]
	plural  string
}

// NewModule creates a catalog module for the given store.
// Panics if s is nil.
func NewModule[T any](s *store.Store[T]) *Module[T] {
	if s == nil {
		panic("catalog.NewModule: store must not be nil")
	}
	return &Module[T]{
		handler: NewHandler(s),
		plural:  s.Descriptor().Plural,
	}
}

// RegisterRoutes registers the resource's routes under the admin group.
func (m *Module[T]) RegisterRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/" + m.plural)
	g.GET("", m.handler.List)
	g.POST("", m.handler.Create)
	g.GET("/stats", m.handler.Stats)
	g.POST("/refresh", m.handler.Refresh)
	g.GET("/:id", m.handler.Get)
	g.PATCH("/:id", m.handler.Update)
	g.DELETE("/:id", m.handler.Delete)
}
