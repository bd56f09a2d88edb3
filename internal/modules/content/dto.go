package content

import "github.com/inkstream/core/internal/models"

// CreateContentDTO is the request body for creating a content item.
type CreateContentDTO struct {
	Title            string               `json:"title"`
	Content          string               `json:"content"`
	Slug             string               `json:"slug"`
	Excerpt          string               `json:"excerpt"`
	Status           models.ContentStatus `json:"status"`
	CategoryID       *string              `json:"categoryId"`
	TagIDs           []string             `json:"tagIds"`
	FeaturedImageURL string               `json:"featuredImageUrl"`
	SEOTitle         string               `json:"seoTitle"`
	MetaDescription  string               `json:"metaDescription"`
	Keywords         string               `json:"keywords"`
}

// UpdateContentDTO is the request body for updating a content item. Every
// field is independently optional; only supplied fields change. A supplied
// TagIDs replaces the full association set.
type UpdateContentDTO struct {
	Title            *string               `json:"title"`
	Content          *string               `json:"content"`
	Slug             *string               `json:"slug"`
	Excerpt          *string               `json:"excerpt"`
	Status           *models.ContentStatus `json:"status"`
	CategoryID       *string               `json:"categoryId"`
	TagIDs           []string              `json:"tagIds"`
	FeaturedImageURL *string               `json:"featuredImageUrl"`
	SEOTitle         *string               `json:"seoTitle"`
	MetaDescription  *string               `json:"metaDescription"`
	Keywords         *string               `json:"keywords"`
}

// ListQuery holds query params for listing content items.
type ListQuery struct {
	Status   string `form:"status"`
	Query    string `form:"query"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
}
