package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkstream/core/internal/pkg/response"
	"github.com/inkstream/core/internal/pkg/slug"
)

const presignExpiry = 15 * time.Minute

// Handler hands out signed upload targets for featured images and other
// assets.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group("/uploads", adminMW)
	g.POST("/sign", h.sign)
}

// SignUploadDTO is the request body for /uploads/sign.
type SignUploadDTO struct {
	Filename    string `json:"filename"    binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

func (h *Handler) sign(c *gin.Context) {
	if h.client == nil {
		response.NotFoundMsg(c, "asset storage is not configured")
		return
	}

	var dto SignUploadDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key := buildObjectKey(dto.Filename)
	uploadURL, err := h.client.PresignPut(c.Request.Context(), key, dto.ContentType, presignExpiry)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"uploadUrl": uploadURL,
		"publicUrl": h.client.PublicURL(key),
		"key":       key,
		"expiresIn": int(presignExpiry.Seconds()),
	})
}

// buildObjectKey namespaces uploads by month and prefixes a random id so
// repeated uploads of the same filename never clash.
func buildObjectKey(filename string) string {
	base := filename
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		base = filename[:idx]
		ext = strings.ToLower(filename[idx:])
	}
	name := slug.Normalize(base)
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("uploads/%s/%s-%s%s",
		time.Now().UTC().Format("2006/01"),
		uuid.New().String()[:8],
		name,
		ext,
	)
}
