package taxonomy

import (
	"errors"

	"github.com/inkstream/core/internal/models"
	"github.com/inkstream/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// ErrNameRequired means a category/tag create had an empty name.
var ErrNameRequired = errors.New("name is required")

type CreateTaxonomyDTO struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateTaxonomyDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// CategoryService manages the single-valued content classification.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	return cats, s.db.Order("name ASC").Find(&cats).Error
}

func (s *CategoryService) Create(dto *CreateTaxonomyDTO) (*models.CategoryModel, error) {
	if dto.Name == "" {
		return nil, ErrNameRequired
	}
	cat := models.CategoryModel{
		Name:        dto.Name,
		Slug:        deriveSlug(dto.Slug, dto.Name),
		Description: dto.Description,
		Color:       dto.Color,
	}
	return &cat, s.db.Create(&cat).Error
}

func (s *CategoryService) Update(id string, dto *UpdateTaxonomyDTO) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := taxonomyUpdates(dto)
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Color != nil {
		updates["color"] = *dto.Color
	}
	return &cat, s.db.Model(&cat).Updates(updates).Error
}

// Delete removes a category; content referencing it becomes uncategorized.
func (s *CategoryService) Delete(id string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ContentModel{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CategoryModel{}, "id = ?", id).Error
	})
	return err == nil, err
}

// TagService manages the multi-valued content classification.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List() ([]models.TagModel, error) {
	var tags []models.TagModel
	return tags, s.db.Order("name ASC").Find(&tags).Error
}

func (s *TagService) Create(dto *CreateTaxonomyDTO) (*models.TagModel, error) {
	if dto.Name == "" {
		return nil, ErrNameRequired
	}
	tag := models.TagModel{Name: dto.Name, Slug: deriveSlug(dto.Slug, dto.Name)}
	return &tag, s.db.Create(&tag).Error
}

func (s *TagService) Update(id string, dto *UpdateTaxonomyDTO) (*models.TagModel, error) {
	var tag models.TagModel
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, s.db.Model(&tag).Updates(taxonomyUpdates(dto)).Error
}

// Delete removes a tag and its content associations.
func (s *TagService) Delete(id string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.TagModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ContentTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TagModel{}, "id = ?", id).Error
	})
	return err == nil, err
}

func deriveSlug(explicit, name string) string {
	if explicit != "" {
		return slug.Normalize(explicit)
	}
	return slug.Normalize(name)
}

// taxonomyUpdates builds the shared name/slug update map: a renamed item with
// no explicit slug gets its slug re-derived from the new name.
func taxonomyUpdates(dto *UpdateTaxonomyDTO) map[string]interface{} {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil {
		updates["slug"] = slug.Normalize(*dto.Slug)
	} else if dto.Name != nil {
		updates["slug"] = slug.Normalize(*dto.Name)
	}
	return updates
}
