package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/httpresp"
	"github.com/BruksfildServices01/salon-pos/internal/infra/repository"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
)

// CrudHandler serves list/get/create/patch/delete for one salon-scoped
// catalog entity. The per-entity hooks turn request bodies into rows.
type CrudHandler[T any] struct {
	entity string
	repo   *repository.Crud[T]
	audit  *audit.Dispatcher

	// searchColumns enables ?query= on List.
	searchColumns []string

	idOf   func(*T) uint
	create func(c *gin.Context, salonID uint) (*T, error)
	patch  func(c *gin.Context) (func(*T) error, error)
}

func (h *CrudHandler[T]) List(c *gin.Context) {
	items, err := h.repo.Search(c.Request.Context(), middleware.SalonID(c), c.Query("query"), h.searchColumns...)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_"+h.entity+"s")
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CrudHandler[T]) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.repo.Get(c.Request.Context(), middleware.SalonID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_"+h.entity)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CrudHandler[T]) Create(c *gin.Context) {
	salonID := middleware.SalonID(c)

	item, err := h.create(c, salonID)
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_"+h.entity)
		return
	}

	if err := h.repo.Create(c.Request.Context(), item); err != nil {
		httperr.FromError(c, err, "failed_to_create_"+h.entity)
		return
	}

	id := h.idOf(item)
	writeAudit(c, h.audit, h.entity+"_created", h.entity, &id, nil)

	created, err := h.repo.Get(c.Request.Context(), salonID, id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_"+h.entity)
		return
	}
	httpresp.Created(c, created)
}

func (h *CrudHandler[T]) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	mutate, err := h.patch(c)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_"+h.entity)
		return
	}

	item, err := h.repo.Update(c.Request.Context(), middleware.SalonID(c), id, mutate)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_"+h.entity)
		return
	}

	writeAudit(c, h.audit, h.entity+"_updated", h.entity, &id, nil)
	c.JSON(http.StatusOK, item)
}

func (h *CrudHandler[T]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), middleware.SalonID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_"+h.entity)
		return
	}

	writeAudit(c, h.audit, h.entity+"_deleted", h.entity, &id, nil)
	c.Status(http.StatusNoContent)
}

// bindBody is bindJSON for the hook functions, which report through errors.
func bindBody(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return httperr.ErrBusinessMsg("invalid_request", err.Error())
	}
	return nil
}
