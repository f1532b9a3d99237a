package cmd

import (
	"path/filepath"
	"promptbuilder-backend/internal/database"
	"promptbuilder-backend/internal/models"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDBCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prompts.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("LOG_FILENAME", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	for _, args := range [][]string{
		{"setup-db"},
		{"setup-db"},
		{"setup-db", "--reset"},
	} {
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute(), "%v", args)
	}
	resetFlag = false

	db, err := database.Open(sqlite.Open(dbPath))
	require.NoError(t, err)
	defer database.Close(db)

	var categories, prompts int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Prompt{}).Count(&prompts).Error)
	assert.Equal(t, int64(5), categories)
	assert.Equal(t, int64(5), prompts)
}

func TestServeRequiresSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "prompts.db"))
	t.Setenv("LOG_FILENAME", "")

	rootCmd.SetArgs([]string{"serve"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}
