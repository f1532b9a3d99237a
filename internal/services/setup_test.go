package services

import (
	"context"
	"promptbuilder-backend/internal/database"
	"promptbuilder-backend/internal/models"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a private in-memory database. A single connection keeps
// every query on the same memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func mustCreateCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func mustCreatePrompt(t *testing.T, svc *PromptService, title, content string, categoryID uint) *models.Prompt {
	t.Helper()
	p, err := svc.Create(context.Background(), PromptInput{Title: title, Content: content, CategoryID: categoryID})
	require.NoError(t, err)
	return p
}
