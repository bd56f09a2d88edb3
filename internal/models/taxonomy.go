package models

// CategoryModel is a single-valued content classification.
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"not null"`
	Slug        string `json:"slug"        gorm:"type:varchar(191);not null;index"`
	Description string `json:"description" gorm:"type:text"`
	Color       string `json:"color"`

	Contents []ContentModel `json:"contents,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }

// TagModel is a multi-valued content classification.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"type:varchar(191);not null;index"`

	Contents []ContentModel `json:"contents,omitempty" gorm:"many2many:content_tags;joinForeignKey:TagID;joinReferences:ContentID"`
}

func (TagModel) TableName() string { return "tags" }
