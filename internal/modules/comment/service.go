package comment

import (
	"errors"
	"strings"

	"github.com/inkstream/core/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	// ErrContentRequired means the comment text was empty (or empty after
	// sanitization).
	ErrContentRequired = errors.New("content is required")
	// ErrTargetNotFound means the referenced content item does not exist.
	ErrTargetNotFound = errors.New("content not found")
)

// Service handles comment business logic.
type Service struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

func NewService(db *gorm.DB) *Service {
	// Comments are plain text; markup is stripped, not escaped.
	return &Service{db: db, sanitizer: bluemonday.StrictPolicy()}
}

// ListByContent returns the comment forest for one content item. Rows are
// loaded oldest-first so reply order inside a thread matches creation order.
func (s *Service) ListByContent(contentID string) ([]*Node, error) {
	var rows []models.CommentModel
	err := s.db.Preload("Author", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "username", "email", "role", "created_at", "updated_at")
	}).
		Where("content_id = ?", contentID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return Nest(rows), nil
}

// CreateCommentDTO is the request body for posting a comment.
type CreateCommentDTO struct {
	ContentID string  `json:"contentId" binding:"required"`
	ParentID  *string `json:"parentId"`
	Content   string  `json:"content"`
}

// Create posts a comment by an authenticated caller against one content item.
func (s *Service) Create(dto *CreateCommentDTO, authorID string) (*models.CommentModel, error) {
	text := strings.TrimSpace(s.sanitizer.Sanitize(dto.Content))
	if text == "" {
		return nil, ErrContentRequired
	}

	var count int64
	if err := s.db.Model(&models.ContentModel{}).Where("id = ?", dto.ContentID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrTargetNotFound
	}

	row := models.CommentModel{
		ContentID: dto.ContentID,
		AuthorID:  authorID,
		ParentID:  dto.ParentID,
		Content:   text,
	}
	return &row, s.db.Create(&row).Error
}

// Delete removes a comment. Moderation only; comments are never edited.
func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
