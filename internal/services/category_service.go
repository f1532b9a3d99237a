package services

import (
	"context"
	"errors"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/internal/models"
	"strings"

	"gorm.io/gorm"
)

// CategoryService stores categories.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategoryUpdate holds the fields of a partial category update; nil means
// unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

func (s *CategoryService) withCounts(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.*, COUNT(prompts.id) AS prompt_count").
		Joins("LEFT JOIN prompts ON prompts.category_id = categories.id").
		Group("categories.id")
}

// List returns every category with its prompt count, ordered by id.
func (s *CategoryService) List(ctx context.Context) ([]models.CategoryWithCount, error) {
	categories := make([]models.CategoryWithCount, 0)
	if err := s.withCounts(ctx).Order("categories.id asc").Scan(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get returns one category with its prompt count.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.CategoryWithCount, error) {
	var categories []models.CategoryWithCount
	if err := s.withCounts(ctx).Where("categories.id = ?", id).Scan(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperr.NotFound("Category not found")
	}
	return &categories[0], nil
}

func categoryExists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores a new category. Names are unique and compared exactly.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.CategoryWithCount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Name is required")
	}

	category := &models.Category{Name: name, Description: description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("Category already exists")
		}
		return translateDuplicate(tx.Create(category).Error, "Category already exists")
	})
	if err != nil {
		return nil, err
	}

	created := category.WithCount(0)
	return &created, nil
}

// Update renames a category and/or changes its description.
func (s *CategoryService) Update(ctx context.Context, id uint, upd CategoryUpdate) (*models.CategoryWithCount, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Category not found")
			}
			return err
		}

		if upd.Name != nil {
			name := strings.TrimSpace(*upd.Name)
			if name == "" {
				return apperr.Validation("Name must not be empty")
			}
			taken, err := nameTaken(tx, name, id)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("Category name already exists")
			}
			category.Name = name
		}
		if upd.Description != nil {
			category.Description = *upd.Description
		}

		return translateDuplicate(tx.Save(&category).Error, "Category name already exists")
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Rename is Update restricted to the name.
func (s *CategoryService) Rename(ctx context.Context, id uint, newName string) (*models.CategoryWithCount, error) {
	return s.Update(ctx, id, CategoryUpdate{Name: &newName})
}

// Delete removes an empty category. Categories that still own prompts are
// refused with a conflict.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := categoryExists(tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Category not found")
		}

		var promptCount int64
		if err := tx.Model(&models.Prompt{}).Where("category_id = ?", id).Count(&promptCount).Error; err != nil {
			return err
		}
		if promptCount > 0 {
			return apperr.Conflict("Cannot delete category with prompts. Move or delete prompts first.")
		}

		return tx.Delete(&models.Category{}, id).Error
	})
}

// EnsureDefault returns the "General" category, creating it when missing.
func (s *CategoryService) EnsureDefault(ctx context.Context) (*models.Category, error) {
	return ensureDefaultCategory(s.db.WithContext(ctx))
}

// FindByName returns the category named name, or ErrNotFound.
func (s *CategoryService) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, err
	}
	return &category, nil
}

func nameTaken(tx *gorm.DB, name string, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.Category{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateDuplicate turns a unique-index violation that slipped past the
// pre-check into a conflict.
func translateDuplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(msg)
	}
	return err
}
