package model

import "time"

// Admin extends a User with a list of permission strings. At most one Admin
// exists per user.
type Admin struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PromoteAdminRequest struct {
	UserID      string   `json:"user_id" binding:"required,uuid"`
	Permissions []string `json:"permissions"`
}

type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}
