package seed

import (
	"context"
	"promptbuilder-backend/internal/database"
	"promptbuilder-backend/internal/services"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultData(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)
	assert.Len(t, data.Categories, 4)
	assert.Len(t, data.Prompts, 5)
	assert.Equal(t, "Write a {tone} email to {recipient} regarding {subject}. The email should be {length} and include {specific_details}.", data.Prompts[0].Content)
}

func TestParseRejectsIncompletePrompt(t *testing.T) {
	_, err := Parse([]byte("prompts:\n  - title: x\n    content: y\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("categories: [oops"))
	assert.Error(t, err)
}

func TestApplyIsIdempotent(t *testing.T) {
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	categories := services.NewCategoryService(db)
	prompts := services.NewPromptService(db)
	seeder := NewSeeder(categories, prompts)
	data, err := Default()
	require.NoError(t, err)
	ctx := context.Background()

	first, err := seeder.Apply(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, "General", first.DefaultCategory)
	assert.Len(t, first.CreatedCategories, 4)
	assert.Len(t, first.CreatedPrompts, 5)
	assert.Equal(t, 5, first.TotalCategories)
	assert.Equal(t, 5, first.TotalPrompts)

	second, err := seeder.Apply(ctx, data)
	require.NoError(t, err)
	assert.Empty(t, second.CreatedCategories)
	assert.Empty(t, second.CreatedPrompts)
	assert.Equal(t, 5, second.TotalCategories)
	assert.Equal(t, 5, second.TotalPrompts)

	codeCategory, err := categories.FindByName(ctx, "Code Generation")
	require.NoError(t, err)
	codePrompts, err := prompts.ListByCategory(ctx, codeCategory.ID)
	require.NoError(t, err)
	require.Len(t, codePrompts, 2)
	assert.Equal(t, []string{"improvement_areas", "language", "project_name", "review_aspects"}, []string(codePrompts[0].Variables))
}
