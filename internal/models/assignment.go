package models

import "time"

// DefaultMaxScore is applied when an assignment is created without an
// explicit maximum score.
const DefaultMaxScore = 100

// Assignment represents a graded task belonging to a course. Ownership is
// transitive through the parent course's teacher.
type Assignment struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	MaxScore    int          `gorm:"not null;default:100" json:"max_score"`
	DueDate     time.Time    `gorm:"not null" json:"due_date"`
	CourseID    uint         `gorm:"not null;index" json:"course_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Course      Course       `gorm:"foreignKey:CourseID" json:"course"`
	Submissions []Submission `gorm:"constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
