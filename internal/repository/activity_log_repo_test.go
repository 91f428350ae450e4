package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/campus-go-api/internal/models"
)

func TestActivityLogListFiltersAndPaginates(t *testing.T) {
	db := setupRepoTestDB(t, &models.ActivityLog{})
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	entries := []models.ActivityLog{
		{ActorID: 1, ActorRole: models.RoleTeacher, Action: "create", EntityType: "course", Metadata: datatypes.JSONMap{"code": "CS201"}},
		{ActorID: 1, ActorRole: models.RoleTeacher, Action: "update", EntityType: "course"},
		{ActorID: 3, ActorRole: models.RoleStudent, Action: "create", EntityType: "enrollment"},
	}
	for i := range entries {
		require.NoError(t, repo.Create(ctx, &entries[i]))
	}

	all, total, err := repo.List(ctx, ActivityLogFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, all, 3)

	created, total, err := repo.List(ctx, ActivityLogFilter{Action: "create"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, created, 2)

	courses, total, err := repo.List(ctx, ActivityLogFilter{EntityType: "course"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, courses, 2)

	actor := uint(3)
	mine, total, err := repo.List(ctx, ActivityLogFilter{ActorID: &actor})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "enrollment", mine[0].EntityType)

	paged, total, err := repo.List(ctx, ActivityLogFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
}
