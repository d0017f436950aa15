package catalog

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/edubridge/admingate/internal/domain"
	"github.com/edubridge/admingate/internal/listview"
	"github.com/edubridge/admingate/internal/pkg"
	"github.com/edubridge/admingate/internal/resource"
	"github.com/edubridge/admingate/internal/store"
)

// Handler handles dashboard REST requests for one resource collection.
type Handler[T any] struct {
	store *store.Store[T]
	spec  listview.Spec
}

// NewHandler creates a Handler bound to the given store.
func NewHandler[T any](s *store.Store[T]) *Handler[T] {
	desc := s.Descriptor()
	return &Handler[T]{
		store: s,
		spec: listview.Spec{
			SearchFields: desc.SearchFields,
			PageSize:     desc.PageSize,
		},
	}
}

// List handles GET /api/v1/admin/{resource}.
//
// The query/filter/page parameters are threaded through the store's
// reducers, the collection is fetched when the store has never loaded (or a
// refresh is requested), and the visible page is derived in memory. A failed
// fetch still returns 200 with the previous items and the error string, so
// the screen keeps stale-but-visible data instead of going blank.
func (h *Handler[T]) List(c *gin.Context) {
	vr := pkg.ParseViewRequest(c)

	h.store.SetQuery(vr.Query)
	for field, value := range vr.Filters {
		h.store.SetFilter(field, value)
	}
	h.store.SetPage(vr.Page)

	ctx := c.Request.Context()
	var err error
	if vr.Refresh {
		err = h.store.List(ctx)
	} else {
		err = h.store.EnsureLoaded(ctx)
	}
	if err != nil {
		slog.WarnContext(ctx, "list fetch failed",
			slog.String("resource", h.store.Descriptor().Plural),
			slog.Any("error", err))
	}

	snap := h.store.Snapshot()
	result := listview.Apply(snap.Items, snap.Query, snap.Filters, snap.Page, h.spec)
	result.Status = snap.Status
	result.Error = snap.Error

	pkg.Success(c, result)
}

// Create handles POST /api/v1/admin/{resource}.
func (h *Handler[T]) Create(c *gin.Context) {
	var payload resource.Raw
	if err := c.ShouldBindJSON(&payload); err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid request body", err))
		return
	}

	rec, err := h.store.Create(c.Request.Context(), payload)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, rec)
}

// Get handles GET /api/v1/admin/{resource}/:id.
func (h *Handler[T]) Get(c *gin.Context) {
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rec)
}

// Update handles PATCH /api/v1/admin/{resource}/:id.
func (h *Handler[T]) Update(c *gin.Context) {
	var partial resource.Raw
	if err := c.ShouldBindJSON(&partial); err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid request body", err))
		return
	}

	rec, err := h.store.Update(c.Request.Context(), c.Param("id"), partial)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rec)
}

// Delete handles DELETE /api/v1/admin/{resource}/:id.
func (h *Handler[T]) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Stats handles GET /api/v1/admin/{resource}/stats.
func (h *Handler[T]) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, stats)
}

// Refresh handles POST /api/v1/admin/{resource}/refresh, forcing a refetch.
func (h *Handler[T]) Refresh(c *gin.Context) {
	if err := h.store.List(c.Request.Context()); err != nil {
		pkg.Error(c, err)
		return
	}

	snap := h.store.Snapshot()
	pkg.Success(c, gin.H{"status": snap.Status, "count": len(snap.Items)})
}
