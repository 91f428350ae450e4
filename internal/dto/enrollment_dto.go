package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// EnrollmentResponse is the serialized enrollment returned to API clients.
type EnrollmentResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	CourseID  uint      `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEnrollmentResponse converts a model into a DTO.
func NewEnrollmentResponse(model models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		CourseID:  model.CourseID,
		CreatedAt: model.CreatedAt,
	}
}
