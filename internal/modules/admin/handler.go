package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/pkg/pagination"
	"github.com/inkstream/core/internal/pkg/response"
)

// Handler handles the admin back-office HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the admin surface; every route requires admin role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group("/admin", adminMW)

	g.GET("/dashboard", h.dashboard)
	g.GET("/users", h.listUsers)
	g.GET("/comments", h.listComments)
}

func (h *Handler) dashboard(c *gin.Context) {
	dash, err := h.svc.GetDashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, dash)
}

func (h *Handler) listUsers(c *gin.Context) {
	q := pagination.FromContext(c)
	users, meta, err := h.svc.ListUsers(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, users, meta.Page, meta.Size, meta.Total)
}

func (h *Handler) listComments(c *gin.Context) {
	q := pagination.FromContext(c)
	rows, meta, err := h.svc.ListComments(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, rows, meta.Page, meta.Size, meta.Total)
}
