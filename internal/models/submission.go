package models

import "time"

// Submission is a student's answer to an assignment. The
// (assignment_id, student_id) pair is unique; resubmission overwrites the
// content and refreshes the submission timestamp instead of creating a
// second row.
type Submission struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AssignmentID  uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"assignment_id"`
	StudentID     uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"student_id"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	AttachmentURL string     `gorm:"size:512" json:"attachment_url"`
	SubmittedAt   time.Time  `gorm:"not null" json:"submitted_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Assignment    Assignment `gorm:"foreignKey:AssignmentID" json:"assignment"`
	Student       User       `gorm:"foreignKey:StudentID" json:"student"`
}
