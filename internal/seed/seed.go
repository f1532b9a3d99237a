// Package seed loads the sample categories and prompts shipped with the
// binary.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/internal/services"
	"promptbuilder-backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultData []byte

type CategorySeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type PromptSeed struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Content  string `yaml:"content"`
}

type Data struct {
	Categories []CategorySeed `yaml:"categories"`
	Prompts    []PromptSeed   `yaml:"prompts"`
}

// Result reports what a seeding run created and the totals afterwards.
type Result struct {
	DefaultCategory   string
	CreatedCategories []string
	CreatedPrompts    []string
	TotalCategories   int
	TotalPrompts      int
}

// Default returns the embedded sample data.
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Parse decodes seed data and checks every prompt names a category.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	for _, p := range data.Prompts {
		if p.Title == "" || p.Content == "" || p.Category == "" {
			return nil, fmt.Errorf("seed prompt %q needs a title, content and category", p.Title)
		}
	}
	return &data, nil
}

// Seeder writes seed data through the services so variables are derived the
// same way as for prompts created over the API.
type Seeder struct {
	categories *services.CategoryService
	prompts    *services.PromptService
}

func NewSeeder(categories *services.CategoryService, prompts *services.PromptService) *Seeder {
	return &Seeder{categories: categories, prompts: prompts}
}

// Apply creates the default category and whatever seed categories and prompts
// are missing. Categories match by name, prompts by title; existing rows are
// left untouched, so Apply can be run repeatedly.
func (s *Seeder) Apply(ctx context.Context, data *Data) (*Result, error) {
	def, err := s.categories.EnsureDefault(ctx)
	if err != nil {
		return nil, err
	}
	result := &Result{DefaultCategory: def.Name}

	for _, c := range data.Categories {
		_, err := s.categories.Create(ctx, c.Name, c.Description)
		switch {
		case err == nil:
			result.CreatedCategories = append(result.CreatedCategories, c.Name)
			logger.Log.Info("Seeded category", zap.String("name", c.Name))
		case apperr.Is(err, apperr.ErrConflict):
		default:
			return nil, fmt.Errorf("seeding category %q: %w", c.Name, err)
		}
	}

	for _, p := range data.Prompts {
		exists, err := s.prompts.TitleExists(ctx, p.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		category, err := s.categories.FindByName(ctx, p.Category)
		if err != nil {
			if apperr.Is(err, apperr.ErrNotFound) {
				logger.Log.Warn("Skipping seed prompt with unknown category",
					zap.String("title", p.Title),
					zap.String("category", p.Category),
				)
				continue
			}
			return nil, err
		}

		if _, err := s.prompts.Create(ctx, services.PromptInput{
			Title:      p.Title,
			Content:    p.Content,
			CategoryID: category.ID,
		}); err != nil {
			return nil, fmt.Errorf("seeding prompt %q: %w", p.Title, err)
		}
		result.CreatedPrompts = append(result.CreatedPrompts, p.Title)
		logger.Log.Info("Seeded prompt", zap.String("title", p.Title))
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	prompts, err := s.prompts.List(ctx, services.PromptFilter{})
	if err != nil {
		return nil, err
	}
	result.TotalCategories = len(categories)
	result.TotalPrompts = len(prompts)
	return result, nil
}
