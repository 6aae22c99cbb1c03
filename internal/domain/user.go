package domain

import "time"

// Role gates page and endpoint access across the portal.
type Role string

const (
	RoleVisitor  Role = "visitor"
	RoleCustomer Role = "customer"
	RoleTech     Role = "tech"
	RoleSupport  Role = "support"
	RoleOps      Role = "ops"
	RoleAdmin    Role = "admin"
)

// IsStaff reports whether the role belongs to back-office staff.
func (r Role) IsStaff() bool {
	switch r {
	case RoleTech, RoleSupport, RoleOps, RoleAdmin:
		return true
	}
	return false
}

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleVisitor, RoleCustomer, RoleTech, RoleSupport, RoleOps, RoleAdmin:
		return true
	}
	return false
}

// UserStatus represents account lifecycle states.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusInvited   UserStatus = "invited"
)

// ValidUserStatus reports whether the value is a known account status.
func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusInvited:
		return true
	}
	return false
}

// User is the single identity record for customers, staff and visitors.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
