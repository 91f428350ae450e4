package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
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

// SubmissionService handles students submitting work for assignments.
type SubmissionService interface {
	Submit(ctx context.Context, p authz.Principal, assignmentID uint, payload dto.SubmissionRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	enrollments repository.EnrollmentRepository
	validator   *validator.Validate
	uploader    FileUploader
	activity    ActivityService
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, enrollments repository.EnrollmentRepository, validate *validator.Validate, uploader FileUploader, activity ActivityService, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		enrollments: enrollments,
		validator:   validate,
		uploader:    uploader,
		activity:    activity,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

// Submit upserts the student's submission for the assignment. The sequence
// is fixed: role check, assignment lookup (404 when absent), enrollment
// check (403 when not enrolled), payload validation, then the keyed upsert.
// Resubmission overwrites the content and refreshes the timestamp; a second
// row is never created.
func (s *submissionService) Submit(ctx context.Context, p authz.Principal, assignmentID uint, payload dto.SubmissionRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	if err := authz.CanSubmit(p); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, apierror.NotFound("assignment not found")
		}
		return dto.SubmissionResponse{}, err
	}

	enrolled, err := s.enrollments.Exists(ctx, p.ID, assignment.CourseID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if !enrolled {
		return dto.SubmissionResponse{}, apierror.Forbidden("you are not enrolled in this course")
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	attachmentURL := ""
	if file != nil {
		if s.uploader == nil {
			return dto.SubmissionResponse{}, apierror.New(400, "file uploads are not enabled")
		}

		if err := validateAttachmentType(file); err != nil {
			return dto.SubmissionResponse{}, apierror.New(400, err.Error())
		}

		reader, err := file.Open()
		if err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to open file: %w", err)
		}
		defer reader.Close()

		attachmentURL, err = s.uploader.Upload(ctx, file.Filename, reader)
		if err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to upload file: %w", err)
		}
	}

	submission := models.Submission{
		AssignmentID:  assignment.ID,
		StudentID:     p.ID,
		Content:       sanitize(payload.Content),
		AttachmentURL: attachmentURL,
		SubmittedAt:   s.now(),
	}

	if err := s.submissions.Upsert(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	stored, err := s.submissions.GetByAssignmentAndStudent(ctx, assignment.ID, p.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Uint("student_id", p.ID).
		Msg("submission stored")
	s.activity.Record(ctx, p, "upsert", EntitySubmission, &stored.ID, map[string]interface{}{"assignment_id": assignment.ID})

	return dto.NewSubmissionResponse(stored), nil
}
