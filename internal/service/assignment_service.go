package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/apierror"
	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

// AssignmentService orchestrates assignment operations. Mutations follow
// the resolve-then-authorize order: the assignment (or, for create, the
// parent course) is looked up first, then ownership is decided.
type AssignmentService interface {
	ListByCourse(ctx context.Context, p authz.Principal, courseID uint) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, p authz.Principal, id uint) (dto.AssignmentDetailResponse, error)
	Create(ctx context.Context, p authz.Principal, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Update(ctx context.Context, p authz.Principal, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, p authz.Principal, id uint) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	activity    ActivityService
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, courses repository.CourseRepository, validate *validator.Validate, activity ActivityService, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		courses:     courses,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) ListByCourse(ctx context.Context, p authz.Principal, courseID uint) ([]dto.AssignmentResponse, error) {
	if courseID == 0 {
		return nil, apierror.New(400, "course id is required")
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponseSlice(assignments), nil
}

// Get returns the assignment together with the submissions the caller may
// see: all of them for the owning teacher, only their own for a student.
func (s *assignmentService) Get(ctx context.Context, p authz.Principal, id uint) (dto.AssignmentDetailResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentDetailResponse{}, apierror.NotFound("assignment not found")
		}
		return dto.AssignmentDetailResponse{}, err
	}

	submissions, err := s.submissions.ListForAssignment(ctx, id, authz.SubmissionScope(p, assignment.Course))
	if err != nil {
		return dto.AssignmentDetailResponse{}, err
	}

	return dto.AssignmentDetailResponse{
		AssignmentResponse: dto.NewAssignmentResponse(assignment),
		Submissions:        dto.NewSubmissionResponseSlice(submissions),
	}, nil
}

func (s *assignmentService) Create(ctx context.Context, p authz.Principal, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if p.Role != models.RoleTeacher {
		return dto.AssignmentResponse{}, apierror.Forbidden("")
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, apierror.NotFound("course not found")
		}
		return dto.AssignmentResponse{}, err
	}

	if err := authz.CanMutateAssignment(p, course); err != nil {
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, apierror.New(400, "invalid due date")
	}

	maxScore := models.DefaultMaxScore
	if payload.MaxScore != nil {
		maxScore = *payload.MaxScore
	}

	assignment := models.Assignment{
		Title:       payload.Title,
		Description: sanitize(payload.Description),
		MaxScore:    maxScore,
		DueDate:     dueDate,
		CourseID:    course.ID,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("course_id", course.ID).Msg("assignment created")
	s.activity.Record(ctx, p, "create", EntityAssignment, &assignment.ID, map[string]interface{}{"course_id": course.ID})

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, p authz.Principal, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	assignment, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, apierror.New(400, "invalid due date")
	}

	assignment.Title = payload.Title
	assignment.Description = sanitize(payload.Description)
	assignment.DueDate = dueDate
	if payload.MaxScore != nil {
		assignment.MaxScore = *payload.MaxScore
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment updated")
	s.activity.Record(ctx, p, "update", EntityAssignment, &assignment.ID, nil)

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, p authz.Principal, id uint) error {
	assignment, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, assignment.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment deleted")
	s.activity.Record(ctx, p, "delete", EntityAssignment, &assignment.ID, nil)

	return nil
}

// loadOwned resolves the assignment and applies the ownership decision, in
// that order, so a missing row is reported as 404 and a foreign row as 403.
func (s *assignmentService) loadOwned(ctx context.Context, p authz.Principal, id uint) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, apierror.NotFound("assignment not found")
		}
		return models.Assignment{}, err
	}

	if err := authz.CanMutateAssignment(p, assignment.Course); err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}
