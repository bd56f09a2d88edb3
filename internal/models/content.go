package models

import "time"

// ContentType discriminates the two parallel publishable types.
type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeBlog    ContentType = "blog"
)

// ContentStatus is the publication state of a content item.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
)

// ContentModel is a publishable item (article or blog post). Slugs are unique
// per content type; PublishedAt is set exactly when status transitions to
// published and cleared when it leaves it.
type ContentModel struct {
	Base
	Type             ContentType    `json:"type"               gorm:"type:varchar(16);not null;uniqueIndex:idx_content_type_slug;index"`
	Title            string         `json:"title"              gorm:"not null"`
	Slug             string         `json:"slug"               gorm:"type:varchar(191);not null;uniqueIndex:idx_content_type_slug"`
	Content          string         `json:"content"            gorm:"type:longtext"`
	Excerpt          string         `json:"excerpt"            gorm:"type:text"`
	Status           ContentStatus  `json:"status"             gorm:"type:varchar(16);default:draft;index"`
	PublishedAt      *time.Time     `json:"published_at"       gorm:"index"`
	CategoryID       *string        `json:"category_id"        gorm:"type:char(36);index"`
	Category         *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags             []TagModel     `json:"tags,omitempty"     gorm:"many2many:content_tags;joinForeignKey:ContentID;joinReferences:TagID"`
	FeaturedImageURL string         `json:"featured_image_url"`
	SEOTitle         string         `json:"seo_title"`
	MetaDescription  string         `json:"meta_description"   gorm:"type:text"`
	Keywords         string         `json:"keywords"`
	AuthorID         string         `json:"author_id"          gorm:"type:char(36);index"`
}

func (ContentModel) TableName() string { return "contents" }

// ContentTag is the many-to-many join row between contents and tags.
type ContentTag struct {
	ContentID string `gorm:"type:char(36);primaryKey"`
	TagID     string `gorm:"type:char(36);primaryKey"`
}

func (ContentTag) TableName() string { return "content_tags" }
