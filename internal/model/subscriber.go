package model

import "time"

// SubscriberSource records where a marketing contact opted in.
type SubscriberSource string

const (
	SourceWebsite  SubscriberSource = "website"
	SourceReferral SubscriberSource = "referral"
	SourceSocial   SubscriberSource = "social"
	SourceEvent    SubscriberSource = "event"
)

func (s SubscriberSource) Valid() bool {
	switch s {
	case SourceWebsite, SourceReferral, SourceSocial, SourceEvent:
		return true
	}
	return false
}

// Subscriber is a newsletter contact.
type Subscriber struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	FirstName      *string          `json:"first_name,omitempty"`
	LastName       *string          `json:"last_name,omitempty"`
	SubscribedAt   time.Time        `json:"subscribed_at"`
	ConfirmedAt    *time.Time       `json:"confirmed_at,omitempty"`
	IsConfirmed    bool             `json:"is_confirmed"`
	UnsubscribedAt *time.Time       `json:"unsubscribed_at,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Source         SubscriberSource `json:"source"`
}

// Active reports whether the contact is currently subscribed.
func (s *Subscriber) Active() bool {
	return s.UnsubscribedAt == nil
}

type SubscribeRequest struct {
	Email     string           `json:"email" binding:"required,email_basic"`
	FirstName *string          `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName  *string          `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Tags      []string         `json:"tags,omitempty"`
	Source    SubscriberSource `json:"source" binding:"omitempty,oneof=website referral social event"`
}

type SubscriberEmailRequest struct {
	Email string `json:"email" binding:"required,email_basic"`
}

type SetTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

type SubscriberFilters struct {
	IsConfirmed *bool
	Source      *SubscriberSource
	Tag         *string
	Active      *bool
}
