package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"litreview_go_backend/internal/models"
)

func TestCreateRunStartsPending(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db)
	project := createTestProject(t, db, owner.ID, "review")
	runService := NewRunService(db)

	run, err := runService.CreateRun(project.ID, datatypes.JSONMap{
		"query":      "transformer surveys",
		"max_papers": 100,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusPending, run.Status)
	assert.Nil(t, run.CompletedAt)

	stored, err := runService.GetRun(project.ID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "transformer surveys", stored.ConfigSnapshot["query"])
	assert.EqualValues(t, 100, stored.ConfigSnapshot["max_papers"])
}

func TestCreateRunWithoutSnapshot(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db)
	project := createTestProject(t, db, owner.ID, "review")
	runService := NewRunService(db)

	run, err := runService.CreateRun(project.ID, nil)
	require.NoError(t, err)

	stored, err := runService.GetRun(project.ID, run.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.ConfigSnapshot)
	assert.Empty(t, stored.ConfigSnapshot)
}

func TestGetRunScopedToProject(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db)
	projectA := createTestProject(t, db, owner.ID, "review A")
	projectB := createTestProject(t, db, owner.ID, "review B")
	runService := NewRunService(db)

	run, err := runService.CreateRun(projectA.ID, nil)
	require.NoError(t, err)

	// A run is only reachable through its own project.
	_, err = runService.GetRun(projectB.ID, run.ID)
	requireNotFound(t, err)

	_, err = runService.GetRun(projectA.ID, uuid.New())
	requireNotFound(t, err)
}

func TestListRunsPagination(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db)
	project := createTestProject(t, db, owner.ID, "review")
	runService := NewRunService(db)

	for i := 0; i < 4; i++ {
		_, err := runService.CreateRun(project.ID, nil)
		require.NoError(t, err)
	}

	window, err := runService.ListRuns(project.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, window, 2)

	beyond, err := runService.ListRuns(project.ID, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
