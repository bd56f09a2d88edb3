package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 50
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// Meta describes the window a paginated query returned.
type Meta struct {
	Page  int
	Size  int
	Total int64
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("pageSize", "10"), DefaultSize)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, Size: size}
}

// Paginate counts the filtered result set, then loads the requested window.
// Total always reflects the full match count, even when the page is past the
// end and dest comes back empty.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (Meta, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return Meta{}, err
	}

	offset := (q.Page - 1) * q.Size
	if err := db.Offset(offset).Limit(q.Size).Find(dest).Error; err != nil {
		return Meta{}, err
	}

	return Meta{Page: q.Page, Size: q.Size, Total: total}, nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
