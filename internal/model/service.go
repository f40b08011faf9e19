package model

import "time"

// Service is a bookable offering priced per session.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	BasePrice       int64     `json:"base_price"` // whole Naira
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	Slug            string `json:"slug" binding:"omitempty,max=200"`
	Description     string `json:"description"`
	BasePrice       int64  `json:"base_price" binding:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	IsActive        *bool  `json:"is_active"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Slug            *string `json:"slug,omitempty" binding:"omitempty,max=200"`
	Description     *string `json:"description,omitempty"`
	BasePrice       *int64  `json:"base_price,omitempty" binding:"omitempty,gte=0"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" binding:"omitempty,gt=0"`
	IsActive        *bool   `json:"is_active,omitempty"`
}
