package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/apierror"
	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

// EnrollmentService handles a principal enrolling themselves in a course.
type EnrollmentService interface {
	Enroll(ctx context.Context, p authz.Principal, courseID uint) (dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	activity    ActivityService
	logger      zerolog.Logger
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository, activity ActivityService, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		activity:    activity,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll creates the (student, course) membership. A second attempt for the
// same pair is rejected as a conflict; the unique index backs the check so
// a race between two identical requests still yields exactly one row.
func (s *enrollmentService) Enroll(ctx context.Context, p authz.Principal, courseID uint) (dto.EnrollmentResponse, error) {
	if err := authz.CanEnroll(p); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, apierror.NotFound("course not found")
		}
		return dto.EnrollmentResponse{}, err
	}

	exists, err := s.enrollments.Exists(ctx, p.ID, courseID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}
	if exists {
		return dto.EnrollmentResponse{}, apierror.Conflict("already enrolled")
	}

	enrollment := models.Enrollment{
		StudentID: p.ID,
		CourseID:  courseID,
	}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.EnrollmentResponse{}, apierror.Conflict("already enrolled")
		}
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Uint("student_id", p.ID).Uint("course_id", courseID).Msg("student enrolled")
	s.activity.Record(ctx, p, "create", EntityEnrollment, &enrollment.ID, map[string]interface{}{"course_id": courseID})

	return dto.NewEnrollmentResponse(enrollment), nil
}
