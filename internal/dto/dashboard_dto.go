package dto

import "time"

// AdminStats are the platform-wide counts shown on the admin dashboard.
// The three counts come from a single transactional read snapshot.
type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCourses     int64 `json:"total_courses"`
	TotalAssignments int64 `json:"total_assignments"`
}

// TeacherStats summarise a teacher's own courses.
type TeacherStats struct {
	TotalCourses     int64 `json:"total_courses"`
	TotalStudents    int64 `json:"total_students"`
	TotalAssignments int64 `json:"total_assignments"`
}

// StudentStats summarise a student's enrollments and submissions.
type StudentStats struct {
	TotalEnrollments   int64 `json:"total_enrollments"`
	TotalSubmissions   int64 `json:"total_submissions"`
	PendingAssignments int64 `json:"pending_assignments"`
}

// DashboardResponse carries the role-specific stats block; exactly one of
// the three sections is populated.
type DashboardResponse struct {
	Role        string        `json:"role"`
	Admin       *AdminStats   `json:"admin,omitempty"`
	Teacher     *TeacherStats `json:"teacher,omitempty"`
	Student     *StudentStats `json:"student,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	CacheHit    bool          `json:"cache_hit"`
}
