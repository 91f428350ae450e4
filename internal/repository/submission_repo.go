package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/models"
)

// SubmissionRepository defines data operations for submissions.
type SubmissionRepository interface {
	ListForAssignment(ctx context.Context, assignmentID uint, scope authz.Scope) ([]models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error)
	Upsert(ctx context.Context, submission *models.Submission) error
	CountForStudent(ctx context.Context, studentID uint) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) ListForAssignment(ctx context.Context, assignmentID uint, scope authz.Scope) ([]models.Submission, error) {
	query := r.db.WithContext(ctx).Model(&models.Submission{}).
		Preload("Student").
		Where("assignment_id = ?", assignmentID)
	if scope != nil {
		query = scope(query)
	}

	var submissions []models.Submission
	if err := query.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Where("student_id = ?", studentID).
		First(&submission).Error; err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

// Upsert creates the submission or, when a row for the same
// (assignment_id, student_id) pair already exists, overwrites its content,
// attachment and submission timestamp. A second row is never created.
func (r *submissionRepository) Upsert(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"content", "attachment_url", "submitted_at", "updated_at",
		}),
	}).Create(submission).Error
}

func (r *submissionRepository) CountForStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}
