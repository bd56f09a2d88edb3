package comment

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/middleware"
	"github.com/inkstream/core/internal/pkg/response"
)

// Handler handles comment HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts comment routes: anyone may read a thread, posting
// requires authentication, deletion is moderation and requires admin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	g := rg.Group("/comments")

	g.GET("", h.list)
	g.POST("", authMW, h.create)
	g.DELETE("/:id", adminMW, h.delete)
}

func (h *Handler) list(c *gin.Context) {
	contentID := c.Query("contentId")
	if contentID == "" {
		response.BadRequest(c, "contentId is required")
		return
	}

	forest, err := h.svc.ListByContent(contentID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, forest)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	row, err := h.svc.Create(&dto, middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrContentRequired):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, ErrTargetNotFound):
			response.NotFoundMsg(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, row)
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFoundMsg(c, "comment not found")
		return
	}
	response.NoContent(c)
}
