package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
// MaxScore defaults to 100 when omitted.
type AssignmentCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"omitempty"`
	MaxScore    *int   `json:"max_score" validate:"omitempty,min=1"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	CourseID    uint   `json:"course_id" validate:"required,gt=0"`
}

// AssignmentUpdateRequest describes the payload for updating an assignment.
type AssignmentUpdateRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"omitempty"`
	MaxScore    *int   `json:"max_score" validate:"omitempty,min=1"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// AssignmentResponse is the serialized assignment returned to API clients.
type AssignmentResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MaxScore    int       `json:"max_score"`
	DueDate     time.Time `json:"due_date"`
	CourseID    uint      `json:"course_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignmentDetailResponse augments an assignment with the submissions the
// caller is allowed to see.
type AssignmentDetailResponse struct {
	AssignmentResponse
	Submissions []SubmissionResponse `json:"submissions"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		MaxScore:    model.MaxScore,
		DueDate:     model.DueDate,
		CourseID:    model.CourseID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}
