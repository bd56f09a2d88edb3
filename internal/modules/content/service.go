package content

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/inkstream/core/internal/models"
	"github.com/inkstream/core/internal/pkg/pagination"
	"github.com/inkstream/core/internal/pkg/slug"
	"gorm.io/gorm"
)

var (
	// ErrMissingFields means title or content was empty on create.
	ErrMissingFields = errors.New("title and content are required")
	// ErrSlugConflict means a concurrent write claimed the slug and the retry
	// lost too.
	ErrSlugConflict = errors.New("slug already exists")
)

// errSlugTaken marks a duplicate-key failure of the content row itself, as
// opposed to one from elsewhere in the create transaction.
var errSlugTaken = errors.New("slug taken")

var uuidShape = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Service handles content business logic for one content type. The article
// and blog trees share this implementation; only the type discriminator
// differs.
type Service struct {
	db          *gorm.DB
	contentType models.ContentType
}

func NewService(db *gorm.DB, contentType models.ContentType) *Service {
	return &Service{db: db, contentType: contentType}
}

// List returns a paginated window of content items. Non-admin callers only
// ever see published items regardless of the requested status filter.
func (s *Service) List(q pagination.Query, lq ListQuery, isAdmin bool) ([]models.ContentModel, pagination.Meta, error) {
	tx := s.db.Model(&models.ContentModel{}).
		Preload("Category").
		Preload("Tags").
		Where("contents.type = ?", s.contentType).
		Order("contents.published_at IS NULL, contents.published_at DESC, contents.created_at DESC")

	if !isAdmin {
		tx = tx.Where("contents.status = ?", models.StatusPublished)
	} else if lq.Status == string(models.StatusDraft) || lq.Status == string(models.StatusPublished) {
		tx = tx.Where("contents.status = ?", lq.Status)
	}

	if lq.Query != "" {
		pattern := "%" + strings.ToLower(lq.Query) + "%"
		tx = tx.Where("LOWER(contents.title) LIKE ? OR LOWER(contents.excerpt) LIKE ?", pattern, pattern)
	}
	if lq.Category != "" {
		tx = tx.Joins("JOIN categories ON categories.id = contents.category_id").
			Where("categories.slug = ?", lq.Category)
	}
	if lq.Tag != "" {
		tx = tx.Joins("JOIN content_tags ON content_tags.content_id = contents.id").
			Joins("JOIN tags ON tags.id = content_tags.tag_id").
			Where("tags.slug = ?", lq.Tag)
	}

	var items []models.ContentModel
	meta, err := pagination.Paginate(tx, q, &items)
	return items, meta, err
}

// GetByIdentifier fetches a single item by id when the identifier has UUID
// shape, otherwise by slug. Category and tags come expanded. No status filter
// applies here: drafts are reachable by direct link for any caller.
func (s *Service) GetByIdentifier(identifier string) (*models.ContentModel, error) {
	tx := s.db.Preload("Category").Preload("Tags").Where("type = ?", s.contentType)
	if uuidShape.MatchString(identifier) {
		tx = tx.Where("id = ?", identifier)
	} else {
		tx = tx.Where("slug = ?", identifier)
	}

	var item models.ContentModel
	if err := tx.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new content item with its tag associations in one
// transaction. The slug is derived from the payload slug or title and
// resolved against slugs already in use for this content type; the composite
// unique index is the backstop for the read-then-write race, with one retry
// against a fresh slug set before giving up.
func (s *Service) Create(dto *CreateContentDTO, authorID string) (*models.ContentModel, error) {
	if strings.TrimSpace(dto.Title) == "" || strings.TrimSpace(dto.Content) == "" {
		return nil, ErrMissingFields
	}

	status := dto.Status
	if status != models.StatusPublished {
		status = models.StatusDraft
	}

	candidate := slug.Normalize(dto.Slug)
	if candidate == "" {
		candidate = slug.Normalize(dto.Title)
	}

	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.existingSlugs("")
		if err != nil {
			return nil, err
		}

		item := models.ContentModel{
			Type:             s.contentType,
			Title:            dto.Title,
			Slug:             slug.Resolve(candidate, existing),
			Content:          dto.Content,
			Excerpt:          dto.Excerpt,
			Status:           status,
			CategoryID:       dto.CategoryID,
			FeaturedImageURL: dto.FeaturedImageURL,
			SEOTitle:         dto.SEOTitle,
			MetaDescription:  dto.MetaDescription,
			Keywords:         dto.Keywords,
			AuthorID:         authorID,
		}
		if status == models.StatusPublished {
			now := time.Now()
			item.PublishedAt = &now
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&item).Error; err != nil {
				// Only a duplicate of the content row means a slug race;
				// failures past this point must not be retried as one.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errSlugTaken
				}
				return err
			}
			return replaceTagLinks(tx, item.ID, dto.TagIDs, false)
		})
		if err == nil {
			return &item, nil
		}
		if !errors.Is(err, errSlugTaken) {
			return nil, err
		}
	}
	return nil, ErrSlugConflict
}

// Update patches a content item by ID. Only supplied fields change. A
// supplied slug is re-normalized but not re-resolved for uniqueness — that is
// the caller's responsibility on update. A supplied status recomputes the
// publish timestamp even when the status value did not change.
func (s *Service) Update(id string, dto *UpdateContentDTO) (*models.ContentModel, error) {
	item, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Slug != nil {
		updates["slug"] = slug.Normalize(*dto.Slug)
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
		if *dto.Status == models.StatusPublished {
			updates["published_at"] = time.Now()
		} else {
			updates["published_at"] = nil
		}
	}
	if dto.CategoryID != nil {
		updates["category_id"] = *dto.CategoryID
	}
	if dto.FeaturedImageURL != nil {
		updates["featured_image_url"] = *dto.FeaturedImageURL
	}
	if dto.SEOTitle != nil {
		updates["seo_title"] = *dto.SEOTitle
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}
	if dto.Keywords != nil {
		updates["keywords"] = *dto.Keywords
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.ContentModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if dto.TagIDs != nil {
			return replaceTagLinks(tx, id, dto.TagIDs, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getByID(id)
}

// Delete hard-deletes a content item together with its tag associations and
// comments. Returns false when no item with the given id exists.
func (s *Service) Delete(id string) (bool, error) {
	item, err := s.getByID(id)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&models.ContentTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ContentModel{}, "id = ?", id).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) getByID(id string) (*models.ContentModel, error) {
	var item models.ContentModel
	err := s.db.Preload("Category").Preload("Tags").
		First(&item, "id = ? AND type = ?", id, s.contentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// existingSlugs loads the slugs in use for this content type, excluding the
// given record when editing.
func (s *Service) existingSlugs(excludingID string) (map[string]struct{}, error) {
	tx := s.db.Model(&models.ContentModel{}).Where("type = ?", s.contentType)
	if excludingID != "" {
		tx = tx.Where("id <> ?", excludingID)
	}
	var slugs []string
	if err := tx.Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(slugs))
	for _, sl := range slugs {
		set[sl] = struct{}{}
	}
	return set, nil
}

// replaceTagLinks writes the full tag association set for a content item.
// When clearFirst is set, existing links are removed before the insert.
// Repeated ids in the payload collapse to one link; the join table's primary
// key would reject them otherwise.
func replaceTagLinks(tx *gorm.DB, contentID string, tagIDs []string, clearFirst bool) error {
	if clearFirst {
		if err := tx.Where("content_id = ?", contentID).Delete(&models.ContentTag{}).Error; err != nil {
			return err
		}
	}
	if len(tagIDs) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tagIDs))
	links := make([]models.ContentTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, dup := seen[tagID]; dup {
			continue
		}
		seen[tagID] = struct{}{}
		links = append(links, models.ContentTag{ContentID: contentID, TagID: tagID})
	}
	return tx.Create(&links).Error
}
