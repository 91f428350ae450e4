package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// SubmissionRequest describes the payload for submitting an assignment.
// Resubmission with the same assignment and student overwrites the content.
type SubmissionRequest struct {
	Content string `json:"content" form:"content" validate:"required,min=1"`
}

// SubmissionResponse is the serialized submission returned to API clients.
type SubmissionResponse struct {
	ID            uint      `json:"id"`
	AssignmentID  uint      `json:"assignment_id"`
	StudentID     uint      `json:"student_id"`
	Content       string    `json:"content"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:            model.ID,
		AssignmentID:  model.AssignmentID,
		StudentID:     model.StudentID,
		Content:       model.Content,
		AttachmentURL: model.AttachmentURL,
		SubmittedAt:   model.SubmittedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}
