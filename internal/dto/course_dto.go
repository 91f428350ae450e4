package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Code        string `json:"code" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
	TeacherID   *uint  `json:"teacher_id" validate:"omitempty,gt=0"`
}

// CourseUpdateRequest describes the payload for updating a course. The
// owner only changes when an admin supplies teacher_id.
type CourseUpdateRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Code        string `json:"code" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
	TeacherID   *uint  `json:"teacher_id" validate:"omitempty,gt=0"`
}

// TeacherSummary is the trimmed teacher view embedded in course responses.
type TeacherSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CourseResponse is the serialized course returned to API clients.
type CourseResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Code        string         `json:"code"`
	Description string         `json:"description"`
	TeacherID   uint           `json:"teacher_id"`
	Teacher     TeacherSummary `json:"teacher"`
	Enrollments int            `json:"enrollment_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:          model.ID,
		Title:       model.Title,
		Code:        model.Code,
		Description: model.Description,
		TeacherID:   model.TeacherID,
		Teacher: TeacherSummary{
			ID:    model.Teacher.ID,
			Name:  model.Teacher.Name,
			Email: model.Teacher.Email,
		},
		Enrollments: len(model.Enrollments),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
