package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/middleware"
)

// RegisterLibraryRoutes exposes the same book operations behind group
// capabilities instead of the staff based tiers.
func (h *BookHandler) RegisterLibraryRoutes(r *gin.RouterGroup) {
	gate := func(op access.Operation) gin.HandlerFunc {
		return middleware.Require(access.LibraryPolicy, op, access.CapabilityFor(op))
	}

	books := r.Group("/library/books")
	{
		books.GET("", gate(access.Read), h.ListBooks)
		books.POST("", gate(access.Create), h.CreateBook)
		books.GET("/:id", gate(access.Read), h.GetBookByID)
		books.PATCH("/:id", gate(access.Update), h.UpdateBook)
		books.DELETE("/:id", gate(access.Delete), h.DeleteBook)
	}
}
