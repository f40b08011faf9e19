package model

import "time"

type DeliveryMode string

const (
	ModeOnline   DeliveryMode = "online"
	ModePhysical DeliveryMode = "physical"
	ModeHybrid   DeliveryMode = "hybrid"
)

func (m DeliveryMode) Valid() bool {
	switch m {
	case ModeOnline, ModePhysical, ModeHybrid:
		return true
	}
	return false
}

type TrainingStatus string

const (
	StatusDraft     TrainingStatus = "draft"
	StatusPublished TrainingStatus = "published"
	StatusArchived  TrainingStatus = "archived"
)

func (s TrainingStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// statusTransitions maps a status to the statuses it may move to.
var statusTransitions = map[TrainingStatus][]TrainingStatus{
	StatusDraft:     {StatusPublished, StatusArchived},
	StatusPublished: {StatusArchived},
	StatusArchived:  {StatusDraft},
}

// CanTransitionTo reports whether a training in status s may move to next.
func (s TrainingStatus) CanTransitionTo(next TrainingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Training is a catalog course. Only published trainings are publicly visible.
type Training struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	Price         int64          `json:"price"` // whole Naira
	DurationWeeks int            `json:"duration_weeks"`
	Mode          DeliveryMode   `json:"mode"`
	Status        TrainingStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type CreateTrainingRequest struct {
	Title         string       `json:"title" binding:"required,max=200"`
	Slug          string       `json:"slug" binding:"omitempty,max=200"`
	Description   string       `json:"description"`
	Price         int64        `json:"price" binding:"gte=0"`
	DurationWeeks int          `json:"duration_weeks" binding:"required,gt=0"`
	Mode          DeliveryMode `json:"mode" binding:"required,oneof=online physical hybrid"`
}

type UpdateTrainingRequest struct {
	Title         *string       `json:"title,omitempty" binding:"omitempty,max=200"`
	Slug          *string       `json:"slug,omitempty" binding:"omitempty,max=200"`
	Description   *string       `json:"description,omitempty"`
	Price         *int64        `json:"price,omitempty" binding:"omitempty,gte=0"`
	DurationWeeks *int          `json:"duration_weeks,omitempty" binding:"omitempty,gt=0"`
	Mode          *DeliveryMode `json:"mode,omitempty" binding:"omitempty,oneof=online physical hybrid"`
}

type UpdateStatusRequest struct {
	Status TrainingStatus `json:"status" binding:"required,oneof=draft published archived"`
}

// TrainingFilters contains filter parameters for training listings
type TrainingFilters struct {
	Status *TrainingStatus
	Mode   *DeliveryMode
}
