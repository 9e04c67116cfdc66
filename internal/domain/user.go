package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an employee known to the recognition system.
// Users are created at seed time and immutable afterwards.
type User struct {
	ID         uuid.UUID
	Email      string
	Name       string
	Role       Role
	Department *string
	// ManagerID is a weak reference: it may point at a user that no longer
	// exists, in which case the manager edge resolves to nil.
	ManagerID *uuid.UUID
	CreatedAt time.Time
}

// HasDepartment reports whether the user belongs to a non-empty department.
func (u *User) HasDepartment() bool {
	return u.Department != nil && *u.Department != ""
}

// Role represents the authorization level of a user.
type Role string

const (
	RoleEmployee            Role = "EMPLOYEE"
	RoleManager             Role = "MANAGER"
	RoleHR                  Role = "HR"
	RoleCrossFunctionalLead Role = "CROSS_FUNCTIONAL_LEAD"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleCrossFunctionalLead:
		return true
	}
	return false
}

// CanAccessAnalytics reports whether the role may read aggregated analytics.
func (r Role) CanAccessAnalytics() bool {
	switch r {
	case RoleManager, RoleHR, RoleCrossFunctionalLead:
		return true
	}
	return false
}

// CanModerate reports whether the role may edit or delete recognitions
// it did not author.
func (r Role) CanModerate() bool {
	return r == RoleHR || r == RoleCrossFunctionalLead
}
