package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// ListEnvelope is the shape every paginated list endpoint returns.
type ListEnvelope struct {
	Data     interface{} `json:"data"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Total    int64       `json:"total"`
}

// OK sends a 200 response. Bare slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Paged sends a paginated list envelope.
func Paged(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, ListEnvelope{
		Data:     data,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abortWith(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	abortWith(c, http.StatusUnauthorized, "authentication required")
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context) {
	abortWith(c, http.StatusForbidden, "insufficient permissions")
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abortWith(c, http.StatusNotFound, "not found")
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abortWith(c, http.StatusNotFound, message)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abortWith(c, http.StatusMethodNotAllowed, "method not allowed")
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abortWith(c, http.StatusConflict, message)
}

// UnprocessableEntity sends a 422 error response.
func UnprocessableEntity(c *gin.Context, message string) {
	abortWith(c, http.StatusUnprocessableEntity, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	abortWith(c, http.StatusTooManyRequests, "rate limit exceeded")
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	abortWith(c, http.StatusInternalServerError, err.Error())
}

func abortWith(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"ok": 0, "code": code, "message": message})
}
