package taxonomy

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/pkg/response"
)

// Handler handles category and tag HTTP requests.
type Handler struct {
	categories *CategoryService
	tags       *TagService
}

func NewHandler(categories *CategoryService, tags *TagService) *Handler {
	return &Handler{categories: categories, tags: tags}
}

// RegisterRoutes mounts taxonomy routes. Listing is public; mutation is
// admin-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	cats := rg.Group("/categories")
	cats.GET("", h.listCategories)
	catAdmin := cats.Group("", adminMW)
	catAdmin.POST("", h.createCategory)
	catAdmin.PATCH("/:id", h.updateCategory)
	catAdmin.DELETE("/:id", h.deleteCategory)

	tags := rg.Group("/tags")
	tags.GET("", h.listTags)
	tagAdmin := tags.Group("", adminMW)
	tagAdmin.POST("", h.createTag)
	tagAdmin.PATCH("/:id", h.updateTag)
	tagAdmin.DELETE("/:id", h.deleteTag)
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.categories.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) createCategory(c *gin.Context) {
	var dto CreateTaxonomyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cat, err := h.categories.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) updateCategory(c *gin.Context) {
	var dto UpdateTaxonomyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cat, err := h.categories.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFoundMsg(c, "category not found")
		return
	}
	response.OK(c, cat)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	found, err := h.categories.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFoundMsg(c, "category not found")
		return
	}
	response.NoContent(c)
}

func (h *Handler) listTags(c *gin.Context) {
	tags, err := h.tags.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) createTag(c *gin.Context) {
	var dto CreateTaxonomyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tags.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, tag)
}

func (h *Handler) updateTag(c *gin.Context) {
	var dto UpdateTaxonomyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tags.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if tag == nil {
		response.NotFoundMsg(c, "tag not found")
		return
	}
	response.OK(c, tag)
}

func (h *Handler) deleteTag(c *gin.Context) {
	found, err := h.tags.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFoundMsg(c, "tag not found")
		return
	}
	response.NoContent(c)
}
