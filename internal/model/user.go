package model

import "time"

// Role is the authorization tier of a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Roles lists every valid role value.
var Roles = []Role{RoleCustomer, RoleStaff, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a registered account
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Role           Role      `json:"role"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	IsActive       bool      `json:"is_active"`
	PasswordHash   string    `json:"-"` // Do not expose password hash in JSON responses
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email_basic"`
	Phone    string `json:"phone" binding:"required,ng_phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest uses pointers to allow partial updates
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty" binding:"omitempty,max=120"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,ng_phone"`
	ProfilePicture *string `json:"profile_picture,omitempty" binding:"omitempty,url"`
}

type SetRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=customer staff admin"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UserFilters contains filter parameters for admin user listings
type UserFilters struct {
	Role     *Role
	IsActive *bool
}
