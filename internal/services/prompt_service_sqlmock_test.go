package services

import (
	"context"
	"promptbuilder-backend/internal/database"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

// The usage counter must be bumped in SQL, not read-modify-written in Go.
func TestUseIncrementsInPlaceOnPostgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "prompts" WHERE "prompts"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "variables", "category_id", "created_at", "updated_at", "usage_count"}).
			AddRow(7, "Greet", "Hello {name}", `["name"]`, 1, now, now, 3))
	mock.ExpectExec(`UPDATE "prompts" SET .*"usage_count"=usage_count \+ \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .*usage_count.* FROM "prompts"`).
		WillReturnRows(sqlmock.NewRows([]string{"usage_count"}).AddRow(4))
	mock.ExpectCommit()

	res, err := NewPromptService(db).Use(context.Background(), 7, map[string]string{"name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ann", res.FinalContent)
	assert.Equal(t, int64(4), res.UsageCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
