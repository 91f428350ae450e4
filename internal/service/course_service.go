package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/apierror"
	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

// CourseService orchestrates course operations. Every call receives the
// resolved principal explicitly; authorization is decided by the authz
// package before any mutation runs.
type CourseService interface {
	List(ctx context.Context, p authz.Principal) ([]dto.CourseResponse, error)
	Get(ctx context.Context, p authz.Principal, id uint) (dto.CourseResponse, error)
	Create(ctx context.Context, p authz.Principal, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, p authz.Principal, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, p authz.Principal, id uint) error
}

type courseService struct {
	courses   repository.CourseRepository
	validator *validator.Validate
	activity  ActivityService
	logger    zerolog.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(courses repository.CourseRepository, validate *validator.Validate, activity ActivityService, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:   courses,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context, p authz.Principal) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx, authz.CourseListScope(p))
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) Get(ctx context.Context, p authz.Principal, id uint) (dto.CourseResponse, error) {
	course, err := s.courses.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, apierror.NotFound("course not found")
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Create(ctx context.Context, p authz.Principal, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := authz.CanCreateCourse(p); err != nil {
		return dto.CourseResponse{}, err
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:       payload.Title,
		Code:        payload.Code,
		Description: sanitize(payload.Description),
		TeacherID:   authz.ResolveCourseOwner(p, payload.TeacherID, 0),
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	created, err := s.courses.GetDetail(ctx, course.ID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Uint("teacher_id", course.TeacherID).Msg("course created")
	s.activity.Record(ctx, p, "create", EntityCourse, &course.ID, map[string]interface{}{"code": course.Code})

	return dto.NewCourseResponse(created), nil
}

func (s *courseService) Update(ctx context.Context, p authz.Principal, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, apierror.NotFound("course not found")
		}
		return dto.CourseResponse{}, err
	}

	if err := authz.CanUpdateCourse(p, course); err != nil {
		return dto.CourseResponse{}, err
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course.Title = payload.Title
	course.Code = payload.Code
	course.Description = sanitize(payload.Description)
	course.TeacherID = authz.ResolveCourseOwner(p, payload.TeacherID, course.TeacherID)

	if err := s.courses.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	updated, err := s.courses.GetDetail(ctx, course.ID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Msg("course updated")
	s.activity.Record(ctx, p, "update", EntityCourse, &course.ID, map[string]interface{}{"code": course.Code})

	return dto.NewCourseResponse(updated), nil
}

func (s *courseService) Delete(ctx context.Context, p authz.Principal, id uint) error {
	if err := authz.CanDeleteCourse(p); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("course not found")
		}
		return err
	}

	s.logger.Info().Uint("course_id", id).Msg("course deleted")
	s.activity.Record(ctx, p, "delete", EntityCourse, &id, nil)

	return nil
}
