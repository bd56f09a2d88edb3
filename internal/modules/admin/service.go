package admin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/inkstream/core/internal/models"
	"github.com/inkstream/core/internal/pkg/pagination"
	pkgredis "github.com/inkstream/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dashboardCacheKey = "inkstream:admin:dashboard"
	dashboardCacheTTL = 30 * time.Second
	recentLimit       = 5
)

// Service aggregates the data behind the admin back office.
type Service struct {
	db     *gorm.DB
	cache  *pkgredis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, cache *pkgredis.Client, logger *zap.Logger) *Service {
	return &Service{db: db, cache: cache, logger: logger}
}

// DashboardStats is the counters block of the dashboard.
type DashboardStats struct {
	TotalArticles     int64 `json:"totalArticles"`
	TotalBlogs        int64 `json:"totalBlogs"`
	PublishedArticles int64 `json:"publishedArticles"`
	DraftArticles     int64 `json:"draftArticles"`
	PublishedBlogs    int64 `json:"publishedBlogs"`
	DraftBlogs        int64 `json:"draftBlogs"`
	TotalUsers        int64 `json:"totalUsers"`
	TotalComments     int64 `json:"totalComments"`
}

// Dashboard is the admin landing payload.
type Dashboard struct {
	Stats          DashboardStats        `json:"stats"`
	RecentContent  []models.ContentModel `json:"recentContent"`
	RecentComments []models.CommentModel `json:"recentComments"`
}

// GetDashboard returns the dashboard, served from a short-lived Redis cache
// when possible. Cache failures degrade to a live query; they never fail the
// request.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && raw != "" {
			var cached Dashboard
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		} else if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	dash, err := s.buildDashboard()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(dash); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return dash, nil
}

func (s *Service) buildDashboard() (*Dashboard, error) {
	var dash Dashboard

	counts := []struct {
		dest *int64
		tx   *gorm.DB
	}{
		{&dash.Stats.TotalArticles, s.contentCount(models.TypeArticle, "")},
		{&dash.Stats.TotalBlogs, s.contentCount(models.TypeBlog, "")},
		{&dash.Stats.PublishedArticles, s.contentCount(models.TypeArticle, models.StatusPublished)},
		{&dash.Stats.DraftArticles, s.contentCount(models.TypeArticle, models.StatusDraft)},
		{&dash.Stats.PublishedBlogs, s.contentCount(models.TypeBlog, models.StatusPublished)},
		{&dash.Stats.DraftBlogs, s.contentCount(models.TypeBlog, models.StatusDraft)},
		{&dash.Stats.TotalUsers, s.db.Model(&models.UserModel{})},
		{&dash.Stats.TotalComments, s.db.Model(&models.CommentModel{})},
	}
	for _, c := range counts {
		if err := c.tx.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&models.ContentModel{}).
		Select("id", "type", "title", "slug", "status", "created_at", "updated_at", "published_at").
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&dash.RecentContent).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Author", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "username", "email", "role", "created_at", "updated_at")
	}).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&dash.RecentComments).Error; err != nil {
		return nil, err
	}

	return &dash, nil
}

func (s *Service) contentCount(t models.ContentType, status models.ContentStatus) *gorm.DB {
	tx := s.db.Model(&models.ContentModel{}).Where("type = ?", t)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	return tx
}

// ListUsers returns accounts, newest first.
func (s *Service) ListUsers(q pagination.Query) ([]models.UserModel, pagination.Meta, error) {
	tx := s.db.Model(&models.UserModel{}).Order("created_at DESC")
	var users []models.UserModel
	meta, err := pagination.Paginate(tx, q, &users)
	return users, meta, err
}

// ModerationComment is a comment row enriched for the moderation queue.
type ModerationComment struct {
	models.CommentModel
	ContentTitle string             `json:"contentTitle"`
	ContentType  models.ContentType `json:"contentType"`
}

// ListComments returns all comments across content, newest first, with the
// target content's title attached for the moderation view.
func (s *Service) ListComments(q pagination.Query) ([]ModerationComment, pagination.Meta, error) {
	tx := s.db.Model(&models.CommentModel{}).
		Preload("Author", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "username", "email", "role", "created_at", "updated_at")
		}).
		Order("created_at DESC")

	var comments []models.CommentModel
	meta, err := pagination.Paginate(tx, q, &comments)
	if err != nil {
		return nil, meta, err
	}

	contentIDs := make([]string, 0, len(comments))
	for _, row := range comments {
		contentIDs = append(contentIDs, row.ContentID)
	}

	titles := map[string]models.ContentModel{}
	if len(contentIDs) > 0 {
		var targets []models.ContentModel
		if err := s.db.Select("id", "title", "type").Find(&targets, "id IN ?", contentIDs).Error; err != nil {
			return nil, meta, err
		}
		for _, t := range targets {
			titles[t.ID] = t
		}
	}

	rows := make([]ModerationComment, 0, len(comments))
	for _, row := range comments {
		mc := ModerationComment{CommentModel: row}
		if t, ok := titles[row.ContentID]; ok {
			mc.ContentTitle = t.Title
			mc.ContentType = t.Type
		}
		rows = append(rows, mc)
	}
	return rows, meta, nil
}
