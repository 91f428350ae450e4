// Package authz holds the pure authorization decisions for every resource.
// Each decision takes the principal and the already-resolved resource and
// returns nil to allow or an *apierror.Error to deny. Existence checks are
// the caller's job and happen before any decision here, so "not found"
// always precedes "forbidden". List operations receive a Scope instead: a
// row filter applied to the underlying query.
package authz

import (
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/apierror"
	"github.com/noah-isme/campus-go-api/internal/models"
)

// Scope narrows a list query to the rows the principal may see.
type Scope func(*gorm.DB) *gorm.DB

// CanCreateCourse allows admins and teachers to create courses.
func CanCreateCourse(p Principal) *apierror.Error {
	switch p.Role {
	case models.RoleAdmin, models.RoleTeacher:
		return nil
	case models.RoleStudent:
		return apierror.Forbidden("")
	default:
		return apierror.Forbidden("")
	}
}

// ResolveCourseOwner decides which teacher a created or updated course is
// assigned to. Teachers always own their own courses; admins may assign an
// arbitrary teacher and fall back to the current owner when none is given.
func ResolveCourseOwner(p Principal, requested *uint, current uint) uint {
	if p.Role == models.RoleAdmin && requested != nil && *requested != 0 {
		return *requested
	}
	if p.Role == models.RoleTeacher {
		return p.ID
	}
	if current != 0 {
		return current
	}
	return p.ID
}

// CanUpdateCourse allows admins unconditionally and teachers only for
// courses they own.
func CanUpdateCourse(p Principal, course models.Course) *apierror.Error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleTeacher:
		if !course.OwnedBy(p.ID) {
			return apierror.Forbidden("you do not own this course")
		}
		return nil
	case models.RoleStudent:
		return apierror.Forbidden("")
	default:
		return apierror.Forbidden("")
	}
}

// CanDeleteCourse restricts course deletion to admins.
func CanDeleteCourse(p Principal) *apierror.Error {
	if p.Role == models.RoleAdmin {
		return nil
	}
	return apierror.Forbidden("")
}

// CourseListScope returns the row filter for course listings. Admins see
// everything, teachers see their own courses, and students see all courses
// so they can browse and self-enroll. The student branch is intentional.
func CourseListScope(p Principal) Scope {
	switch p.Role {
	case models.RoleTeacher:
		teacherID := p.ID
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("teacher_id = ?", teacherID)
		}
	case models.RoleAdmin, models.RoleStudent:
		return func(db *gorm.DB) *gorm.DB { return db }
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("1 = 0")
		}
	}
}

// CanMutateAssignment allows only the teacher owning the parent course to
// create, update or delete an assignment. The caller resolves the course
// first; a missing course is a 404 before this decision runs.
func CanMutateAssignment(p Principal, course models.Course) *apierror.Error {
	if p.Role != models.RoleTeacher {
		return apierror.Forbidden("")
	}
	if !course.OwnedBy(p.ID) {
		return apierror.Forbidden("you do not own this course")
	}
	return nil
}

// CanEnroll allows any authenticated principal to enroll themselves.
// Duplicate pairs surface as conflicts at the storage boundary.
func CanEnroll(p Principal) *apierror.Error {
	if p.ID == 0 {
		return apierror.Unauthenticated()
	}
	return nil
}

// CanSubmit allows only students to submit. Enrollment in the assignment's
// course is verified by the operation after the assignment has been
// resolved.
func CanSubmit(p Principal) *apierror.Error {
	if p.Role != models.RoleStudent {
		return apierror.Forbidden("")
	}
	return nil
}

// SubmissionScope returns the row filter for reading an assignment's
// submissions: admins and the owning teacher see all of them, a student
// sees only their own.
func SubmissionScope(p Principal, course models.Course) Scope {
	switch {
	case p.Role == models.RoleAdmin:
		return func(db *gorm.DB) *gorm.DB { return db }
	case p.Role == models.RoleTeacher && course.OwnedBy(p.ID):
		return func(db *gorm.DB) *gorm.DB { return db }
	case p.Role == models.RoleStudent:
		studentID := p.ID
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("student_id = ?", studentID)
		}
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("1 = 0")
		}
	}
}
