package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/middleware"
	"github.com/inkstream/core/internal/pkg/response"
)

// Handler handles authentication HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/login", h.login)
	a.POST("/register", h.register)
	a.GET("/me", authMW, h.me)
}

// LoginDTO is the request body for /auth/login.
type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "user": user})
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.GetProfile(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, user)
}
