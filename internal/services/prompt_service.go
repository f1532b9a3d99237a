package services

import (
	"context"
	"errors"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/internal/models"
	"promptbuilder-backend/internal/variables"
	"strings"

	"gorm.io/gorm"
)

// PromptService stores prompt templates and applies them.
type PromptService struct {
	db *gorm.DB
}

func NewPromptService(db *gorm.DB) *PromptService {
	return &PromptService{db: db}
}

// PromptInput describes a new prompt. A zero CategoryID selects the default
// category.
type PromptInput struct {
	Title      string
	Content    string
	CategoryID uint
}

// PromptUpdate holds the fields of a partial prompt update; nil means unchanged.
type PromptUpdate struct {
	Title      *string
	Content    *string
	CategoryID *uint
}

// PromptFilter narrows List. Zero values disable a filter.
type PromptFilter struct {
	CategoryID uint
	Search     string
}

// UseResult is the outcome of applying a prompt.
type UseResult struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	FinalContent string `json:"final_content"`
	UsageCount   int64  `json:"usage_count"`
}

func (s *PromptService) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Prompt{}).Preload("Category")
}

// List returns prompts ordered by id, optionally filtered by category and a
// search term.
func (s *PromptService) List(ctx context.Context, filter PromptFilter) ([]models.Prompt, error) {
	q := s.query(ctx)
	if filter.CategoryID != 0 {
		q = q.Where("prompts.category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		q = whereMatches(q, filter.Search)
	}

	prompts := make([]models.Prompt, 0)
	if err := q.Order("prompts.id asc").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

// Get returns one prompt with its category loaded.
func (s *PromptService) Get(ctx context.Context, id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := s.query(ctx).First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Prompt not found")
		}
		return nil, err
	}
	return &prompt, nil
}

// ListByCategory returns the prompts of an existing category.
func (s *PromptService) ListByCategory(ctx context.Context, categoryID uint) ([]models.Prompt, error) {
	exists, err := categoryExists(s.db.WithContext(ctx), categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Category not found")
	}
	return s.List(ctx, PromptFilter{CategoryID: categoryID})
}

// Create validates and stores a prompt, deriving its variables from the content.
func (s *PromptService) Create(ctx context.Context, in PromptInput) (*models.Prompt, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Validation("Title and content are required")
	}

	prompt := &models.Prompt{
		Title:     title,
		Content:   in.Content,
		Variables: variables.Extract(in.Content),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID := in.CategoryID
		if categoryID == 0 {
			def, err := ensureDefaultCategory(tx)
			if err != nil {
				return err
			}
			categoryID = def.ID
		} else if err := requireCategory(tx, categoryID); err != nil {
			return err
		}

		prompt.CategoryID = categoryID
		return tx.Create(prompt).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, prompt.ID)
}

// Update applies a partial update. Changing the content recomputes the
// variables; changing the category requires the target to exist.
func (s *PromptService) Update(ctx context.Context, id uint, upd PromptUpdate) (*models.Prompt, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := tx.First(&prompt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Prompt not found")
			}
			return err
		}

		if upd.Title != nil {
			title := strings.TrimSpace(*upd.Title)
			if title == "" {
				return apperr.Validation("Title must not be empty")
			}
			prompt.Title = title
		}
		if upd.Content != nil {
			if strings.TrimSpace(*upd.Content) == "" {
				return apperr.Validation("Content must not be empty")
			}
			prompt.Content = *upd.Content
			prompt.Variables = variables.Extract(prompt.Content)
		}
		if upd.CategoryID != nil && *upd.CategoryID != prompt.CategoryID {
			if err := requireCategory(tx, *upd.CategoryID); err != nil {
				return err
			}
			prompt.CategoryID = *upd.CategoryID
		}

		// usage_count is owned by Use
		return tx.Model(&prompt).
			Select("title", "content", "variables", "category_id").
			Updates(&prompt).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a prompt.
func (s *PromptService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Prompt{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Prompt not found")
	}
	return nil
}

// Use fills the prompt's placeholders with values and counts the use. The
// counter is bumped in SQL, never read-modify-written.
func (s *PromptService) Use(ctx context.Context, id uint, values map[string]string) (*UseResult, error) {
	var result *UseResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := tx.First(&prompt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Prompt not found")
			}
			return err
		}

		if err := tx.Model(&models.Prompt{}).
			Where("id = ?", id).
			Update("usage_count", gorm.Expr("usage_count + ?", 1)).Error; err != nil {
			return err
		}

		var usageCount int64
		if err := tx.Model(&models.Prompt{}).Where("id = ?", id).Pluck("usage_count", &usageCount).Error; err != nil {
			return err
		}

		result = &UseResult{
			ID:           prompt.ID,
			Title:        prompt.Title,
			FinalContent: variables.Substitute(prompt.Content, values),
			UsageCount:   usageCount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Search matches term case-insensitively against title or content. The
// category filter is applied first; limit <= 0 means no limit.
func (s *PromptService) Search(ctx context.Context, term string, categoryID uint, limit int) ([]models.Prompt, error) {
	q := s.query(ctx)
	if categoryID != 0 {
		q = q.Where("prompts.category_id = ?", categoryID)
	}
	if term != "" {
		q = whereMatches(q, term)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	prompts := make([]models.Prompt, 0)
	if err := q.Order("prompts.id asc").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

// MostUsed returns prompts by usage count, highest first, ties by id.
func (s *PromptService) MostUsed(ctx context.Context, limit int) ([]models.Prompt, error) {
	return s.ranked(ctx, "prompts.usage_count desc", limit)
}

// Recent returns the newest prompts first, ties by id.
func (s *PromptService) Recent(ctx context.Context, limit int) ([]models.Prompt, error) {
	return s.ranked(ctx, "prompts.created_at desc", limit)
}

func (s *PromptService) ranked(ctx context.Context, order string, limit int) ([]models.Prompt, error) {
	q := s.query(ctx).Order(order).Order("prompts.id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	prompts := make([]models.Prompt, 0)
	if err := q.Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

// whereMatches folds both sides with the database's LOWER. SQLite folds ASCII
// letters only.
func whereMatches(q *gorm.DB, term string) *gorm.DB {
	pattern := "%" + escapeLike(term) + "%"
	return q.Where(`(LOWER(prompts.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(prompts.content) LIKE LOWER(?) ESCAPE '\')`, pattern, pattern)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func requireCategory(tx *gorm.DB, id uint) error {
	exists, err := categoryExists(tx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Validation("Category not found")
	}
	return nil
}

func ensureDefaultCategory(tx *gorm.DB) (*models.Category, error) {
	var category models.Category
	err := tx.Where(models.Category{Name: models.DefaultCategoryName}).
		Attrs(models.Category{Description: models.DefaultCategoryDescription}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// TitleExists reports whether a prompt titled title is stored.
func (s *PromptService) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Prompt{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
