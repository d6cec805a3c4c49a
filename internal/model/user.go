package model

import "time"

// RoleName identifies a role a user can hold on the platform.
type RoleName string

const (
	RoleSuperAdmin    RoleName = "super_admin"
	RoleBusinessOwner RoleName = "business_owner"
	RoleStallManager  RoleName = "stall_manager"
	RoleStaff         RoleName = "staff"
	RoleCustomer      RoleName = "customer"
)

// Valid reports whether r is a known role.
func (r RoleName) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleBusinessOwner, RoleStallManager, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// RoleAssignment grants a role, optionally scoped to a business and a stall within it.
type RoleAssignment struct {
	Role       RoleName `json:"role"`
	BusinessID string   `json:"business_id,omitempty"`
	StallID    string   `json:"stall_id,omitempty"`
}

// Validate checks that the scope matches the role:
// super_admin and customer are global, business_owner needs a business,
// stall_manager needs a business and a stall, staff needs a business.
func (a RoleAssignment) Validate() bool {
	switch a.Role {
	case RoleSuperAdmin, RoleCustomer:
		return a.BusinessID == "" && a.StallID == ""
	case RoleBusinessOwner:
		return a.BusinessID != "" && a.StallID == ""
	case RoleStallManager:
		return a.BusinessID != "" && a.StallID != ""
	case RoleStaff:
		return a.BusinessID != ""
	}
	return false
}

// User is an account on the platform. Roles are stored as a JSON document.
type User struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	Name          string           `json:"name"`
	Phone         string           `json:"phone,omitempty"`
	PasswordHash  string           `json:"-"`
	Roles         []RoleAssignment `json:"roles"`
	Active        bool             `json:"active"`
	EmailVerified bool             `json:"email_verified"`
	LastLoginAt   *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// HasPassword reports whether the user can log in with a password.
// Users created through an invitation only have a magic link until they set one.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Principal returns the authorization view of the user.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, Name: u.Name, Roles: u.Roles}
}

// GrantRole appends a unless an identical assignment is already present.
func (u *User) GrantRole(a RoleAssignment) bool {
	for _, r := range u.Roles {
		if r == a {
			return false
		}
	}
	u.Roles = append(u.Roles, a)
	return true
}
