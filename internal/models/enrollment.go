package models

import "time"

// Enrollment records a student's membership in a course. The
// (student_id, course_id) pair is unique; enrollments are created and
// deleted, never updated.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	Student   User      `gorm:"foreignKey:StudentID" json:"student"`
	Course    Course    `gorm:"foreignKey:CourseID" json:"course"`
}
