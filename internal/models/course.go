package models

import "time"

// Course represents a course owned by exactly one teacher.
type Course struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Code        string       `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Description string       `gorm:"type:text" json:"description"`
	TeacherID   uint         `gorm:"not null;index" json:"teacher_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Teacher     User         `gorm:"foreignKey:TeacherID" json:"teacher"`
	Enrollments []Enrollment `gorm:"constraint:OnDelete:CASCADE" json:"enrollments,omitempty"`
	Assignments []Assignment `gorm:"constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

// OwnedBy reports whether the given user owns this course.
func (c Course) OwnedBy(userID uint) bool {
	return c.TeacherID == userID
}
