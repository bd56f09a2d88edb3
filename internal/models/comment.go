package models

// CommentModel is a reader comment on a content item. Comments are written
// once and never edited; replies reference their parent comment.
type CommentModel struct {
	Base
	ContentID string     `json:"content_id"       gorm:"type:char(36);not null;index"`
	AuthorID  string     `json:"author_id"        gorm:"type:char(36);not null;index"`
	Author    *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ParentID  *string    `json:"parent_id"        gorm:"type:char(36);index"`
	Content   string     `json:"content"          gorm:"type:text;not null"`
}

func (CommentModel) TableName() string { return "comments" }
