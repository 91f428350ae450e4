package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// AdminCounts is the platform-wide snapshot backing the admin dashboard.
type AdminCounts struct {
	Users       int64
	Courses     int64
	Assignments int64
}

// TeacherCounts summarise a teacher's courses.
type TeacherCounts struct {
	Courses     int64
	Students    int64
	Assignments int64
}

// StudentCounts summarise a student's enrollments and submissions.
type StudentCounts struct {
	Enrollments        int64
	Submissions        int64
	PendingAssignments int64
}

// StatsRepository supplies the aggregate counts for role dashboards.
type StatsRepository interface {
	AdminCounts(ctx context.Context) (AdminCounts, error)
	TeacherCounts(ctx context.Context, teacherID uint) (TeacherCounts, error)
	StudentCounts(ctx context.Context, studentID uint) (StudentCounts, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository constructs the stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// AdminCounts runs the three platform counts inside one transaction so they
// form a consistent snapshot relative to each other.
func (r *statsRepository) AdminCounts(ctx context.Context) (AdminCounts, error) {
	var counts AdminCounts
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Count(&counts.Users).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Course{}).Count(&counts.Courses).Error; err != nil {
			return err
		}
		return tx.Model(&models.Assignment{}).Count(&counts.Assignments).Error
	})
	return counts, err
}

func (r *statsRepository) TeacherCounts(ctx context.Context, teacherID uint) (TeacherCounts, error) {
	var counts TeacherCounts

	if err := r.db.WithContext(ctx).Model(&models.Course{}).
		Where("teacher_id = ?", teacherID).
		Count(&counts.Courses).Error; err != nil {
		return TeacherCounts{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Count(&counts.Students).Error; err != nil {
		return TeacherCounts{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Joins("JOIN courses ON courses.id = assignments.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Count(&counts.Assignments).Error; err != nil {
		return TeacherCounts{}, err
	}

	return counts, nil
}

func (r *statsRepository) StudentCounts(ctx context.Context, studentID uint) (StudentCounts, error) {
	var counts StudentCounts

	if err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ?", studentID).
		Count(&counts.Enrollments).Error; err != nil {
		return StudentCounts{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("student_id = ?", studentID).
		Count(&counts.Submissions).Error; err != nil {
		return StudentCounts{}, err
	}

	// Assignments in enrolled courses the student has not submitted yet.
	if err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Joins("JOIN enrollments ON enrollments.course_id = assignments.course_id").
		Where("enrollments.student_id = ?", studentID).
		Where("assignments.id NOT IN (?)",
			r.db.Model(&models.Submission{}).
				Select("assignment_id").
				Where("student_id = ?", studentID)).
		Count(&counts.PendingAssignments).Error; err != nil {
		return StudentCounts{}, err
	}

	return counts, nil
}
