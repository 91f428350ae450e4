package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// EnrollmentRepository defines data operations for enrollments. Rows are
// created and deleted, never updated.
type EnrollmentRepository interface {
	Exists(ctx context.Context, studentID, courseID uint) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, studentID, courseID uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates the repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("course_id = ?", courseID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) Delete(ctx context.Context, studentID, courseID uint) error {
	result := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("course_id = ?", courseID).
		Delete(&models.Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
