package authz

import "github.com/noah-isme/campus-go-api/internal/models"

// Principal is the authenticated caller. It is resolved once per request by
// the JWT middleware and passed explicitly into every policy decision and
// service operation; nothing below the handler layer re-derives identity.
type Principal struct {
	ID    uint
	Name  string
	Email string
	Role  models.Role
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// IsTeacher reports whether the principal holds the TEACHER role.
func (p Principal) IsTeacher() bool {
	return p.Role == models.RoleTeacher
}

// IsStudent reports whether the principal holds the STUDENT role.
func (p Principal) IsStudent() bool {
	return p.Role == models.RoleStudent
}
