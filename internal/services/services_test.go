package services

import (
	"fmt"
	"strings"
	"testing"

	"litreview_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a shared in-memory sqlite database named after the test so
// parallel tests never see each other's rows. TranslateError makes the sqlite
// driver report unique violations as gorm.ErrDuplicatedKey, same as postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Project{}, &models.Run{}, &models.Paper{}, &models.ProjectPaper{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user, err := NewUserService(db).EnsureUser(uuid.New())
	require.NoError(t, err)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *models.Project {
	t.Helper()
	project, err := NewProjectService(db).CreateProject(ownerID, name, nil)
	require.NoError(t, err)
	return project
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
