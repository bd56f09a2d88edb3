package content

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/middleware"
	"github.com/inkstream/core/internal/pkg/pagination"
	"github.com/inkstream/core/internal/pkg/response"
)

// Handler handles content HTTP requests for one content type tree.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the content routes onto the given router group.
// Reads are public (subject to the published-only filter); writes require
// the admin middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, path string, adminMW gin.HandlerFunc) {
	g := rg.Group("/" + path)

	g.GET("", h.list)
	g.GET("/:idOrSlug", h.get)

	admin := g.Group("", adminMW)
	admin.POST("", h.create)
	admin.PATCH("/:idOrSlug", h.update)
	admin.DELETE("/:idOrSlug", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, meta, err := h.svc.List(q, lq, middleware.IsAdmin(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta.Page, meta.Size, meta.Total)
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.svc.GetByIdentifier(c.Param("idOrSlug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFoundMsg(c, "content not found")
		return
	}
	response.OK(c, item)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Create(&dto, middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, ErrSlugConflict):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Update(c.Param("idOrSlug"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFoundMsg(c, "content not found")
		return
	}
	response.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Param("idOrSlug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFoundMsg(c, "content not found")
		return
	}
	response.NoContent(c)
}
