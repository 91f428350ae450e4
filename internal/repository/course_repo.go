package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/models"
)

// CourseRepository defines data operations for courses.
type CourseRepository interface {
	List(ctx context.Context, scope authz.Scope) ([]models.Course, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	GetDetail(ctx context.Context, id uint) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates the repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, scope authz.Scope) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{}).
		Preload("Teacher").
		Preload("Enrollments")
	if scope != nil {
		query = scope(query)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) GetDetail(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Assignments").
		Preload("Enrollments").
		Preload("Enrollments.Student").
		First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
