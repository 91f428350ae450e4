package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
	"github.com/noah-isme/campus-go-api/internal/service"
)

func setupSeed(t *testing.T, enabled bool, token string) service.SeedService {
	t.Helper()
	db := setupServiceDB(t)

	return service.NewSeedService(
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewAssignmentRepository(db),
		enabled,
		token,
		zerolog.New(io.Discard),
	)
}

func TestSeedDisabled(t *testing.T) {
	svc := setupSeed(t, false, "secret")

	_, err := svc.Seed(context.Background(), "secret")
	require.ErrorIs(t, err, service.ErrSeedDisabled)
}

func TestSeedRejectsBadToken(t *testing.T) {
	svc := setupSeed(t, true, "secret")

	_, err := svc.Seed(context.Background(), "wrong")
	require.ErrorIs(t, err, service.ErrSeedUnauthorized)

	_, err = svc.Seed(context.Background(), "")
	require.ErrorIs(t, err, service.ErrSeedUnauthorized)
}

func TestSeedRejectsWhenNoTokenConfigured(t *testing.T) {
	svc := setupSeed(t, true, "")

	_, err := svc.Seed(context.Background(), "")
	require.ErrorIs(t, err, service.ErrSeedUnauthorized)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := setupSeed(t, true, "secret")

	first, err := svc.Seed(context.Background(), "secret")
	require.NoError(t, err)
	require.Equal(t, 3, first.UsersCreated, "one user per role")
	require.Equal(t, 1, first.CoursesCreated)
	require.Equal(t, 1, first.EnrollmentsCreated)
	require.Equal(t, 1, first.AssignmentsCreated)

	second, err := svc.Seed(context.Background(), "secret")
	require.NoError(t, err)
	require.Equal(t, service.SeedResult{}, second, "a second run creates nothing")
}

func TestSeedCourseOwnedBySeededTeacher(t *testing.T) {
	db := setupServiceDB(t)
	svc := service.NewSeedService(
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewAssignmentRepository(db),
		true,
		"secret",
		zerolog.New(io.Discard),
	)

	_, err := svc.Seed(context.Background(), "secret")
	require.NoError(t, err)

	var teacher models.User
	require.NoError(t, db.Where("email = ?", "teacher@school.test").First(&teacher).Error)
	require.Equal(t, models.RoleTeacher, teacher.Role)

	var course models.Course
	require.NoError(t, db.Where("code = ?", "CS101").First(&course).Error)
	require.Equal(t, teacher.ID, course.TeacherID)
}
