package repository

import (
	"context"
	"fmt"
	"strings"

	"academy_portal/internal/model"
	"academy_portal/internal/validate"
)

// SubscriberRepository defines operations for newsletter contacts
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *model.Subscriber) error
	FindByID(ctx context.Context, id string) (*model.Subscriber, error)
	FindByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	List(ctx context.Context, filters model.SubscriberFilters) ([]model.Subscriber, error)
	Confirm(ctx context.Context, email string) (*model.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error)
	Resubscribe(ctx context.Context, subscriber *model.Subscriber) error
	SetTags(ctx context.Context, id string, tags []string) (*model.Subscriber, error)
}

const subscriberColumns = `id, email, first_name, last_name, subscribed_at, confirmed_at, is_confirmed, unsubscribed_at, tags, source`

type subscriberRepository struct {
	db DBTX
}

// NewSubscriberRepository creates a new SubscriberRepository
func NewSubscriberRepository(db DBTX) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func scanSubscriber(row rowScanner, s *model.Subscriber) error {
	return row.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.SubscribedAt, &s.ConfirmedAt,
		&s.IsConfirmed, &s.UnsubscribedAt, &s.Tags, &s.Source)
}

func (r *subscriberRepository) returning(ctx context.Context, op, sql string, args ...any) (*model.Subscriber, error) {
	s := &model.Subscriber{}
	if err := scanSubscriber(r.db.QueryRow(ctx, sql, args...), s); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, classify(err))
	}
	return s, nil
}

// Create inserts a new subscriber
func (r *subscriberRepository) Create(ctx context.Context, s *model.Subscriber) error {
	s.Email = validate.NormalizeEmail(s.Email)
	if s.Source == "" {
		s.Source = model.SourceWebsite
	}
	if err := checkSubscriber(s); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = newID()
	}
	s.Tags = nonNil(s.Tags)

	sql := `INSERT INTO subscribers (id, email, first_name, last_name, tags, source)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING subscribed_at`
	err := r.db.QueryRow(ctx, sql, s.ID, s.Email, s.FirstName, s.LastName, s.Tags, s.Source).Scan(&s.SubscribedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscriber: %w", classify(err))
	}
	return nil
}

// FindByID retrieves a subscriber by ID
func (r *subscriberRepository) FindByID(ctx context.Context, id string) (*model.Subscriber, error) {
	return r.returning(ctx, "find subscriber by ID",
		`SELECT `+subscriberColumns+` FROM subscribers WHERE id = $1`, id)
}

// FindByEmail retrieves a subscriber by email, case-insensitively
func (r *subscriberRepository) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	return r.returning(ctx, "find subscriber by email",
		`SELECT `+subscriberColumns+` FROM subscribers WHERE email = $1`, validate.NormalizeEmail(email))
}

// List retrieves subscribers with optional filters, newest first
func (r *subscriberRepository) List(ctx context.Context, filters model.SubscriberFilters) ([]model.Subscriber, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + subscriberColumns + ` FROM subscribers WHERE 1=1`)
	args := []interface{}{}
	argCount := 1

	if filters.IsConfirmed != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND is_confirmed = $%d", argCount))
		args = append(args, *filters.IsConfirmed)
		argCount++
	}
	if filters.Source != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND source = $%d", argCount))
		args = append(args, *filters.Source)
		argCount++
	}
	if filters.Tag != nil && *filters.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(tags)", argCount))
		args = append(args, *filters.Tag)
	}
	if filters.Active != nil {
		if *filters.Active {
			queryBuilder.WriteString(" AND unsubscribed_at IS NULL")
		} else {
			queryBuilder.WriteString(" AND unsubscribed_at IS NOT NULL")
		}
	}
	queryBuilder.WriteString(" ORDER BY subscribed_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := []model.Subscriber{}
	for rows.Next() {
		var s model.Subscriber
		if err := scanSubscriber(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber rows: %w", err)
	}
	return subscribers, nil
}

// Confirm marks an active subscription confirmed. The first confirmation time
// is kept. An unsubscribed contact is reported as ErrNotFound.
func (r *subscriberRepository) Confirm(ctx context.Context, email string) (*model.Subscriber, error) {
	return r.returning(ctx, "confirm subscriber",
		`UPDATE subscribers SET is_confirmed = TRUE, confirmed_at = COALESCE(confirmed_at, NOW())
         WHERE email = $1 AND unsubscribed_at IS NULL RETURNING `+subscriberColumns, validate.NormalizeEmail(email))
}

// Unsubscribe records the opt-out time. The row is kept so the address is
// not re-added without a fresh opt-in.
func (r *subscriberRepository) Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	return r.returning(ctx, "unsubscribe subscriber",
		`UPDATE subscribers SET unsubscribed_at = COALESCE(unsubscribed_at, NOW())
         WHERE email = $1 RETURNING `+subscriberColumns, validate.NormalizeEmail(email))
}

// Resubscribe reactivates an unsubscribed contact as a fresh, unconfirmed opt-in
func (r *subscriberRepository) Resubscribe(ctx context.Context, s *model.Subscriber) error {
	s.Email = validate.NormalizeEmail(s.Email)
	if s.Source == "" {
		s.Source = model.SourceWebsite
	}
	if err := checkSubscriber(s); err != nil {
		return err
	}

	sql := `UPDATE subscribers
            SET unsubscribed_at = NULL, subscribed_at = NOW(), is_confirmed = FALSE, confirmed_at = NULL,
                first_name = COALESCE($2, first_name), last_name = COALESCE($3, last_name),
                tags = $4, source = $5
            WHERE email = $1 RETURNING ` + subscriberColumns
	if err := scanSubscriber(r.db.QueryRow(ctx, sql, s.Email, s.FirstName, s.LastName, nonNil(s.Tags), s.Source), s); err != nil {
		return fmt.Errorf("failed to resubscribe subscriber: %w", classify(err))
	}
	return nil
}

// SetTags replaces the tag list of a subscriber
func (r *subscriberRepository) SetTags(ctx context.Context, id string, tags []string) (*model.Subscriber, error) {
	return r.returning(ctx, "set subscriber tags",
		`UPDATE subscribers SET tags = $1 WHERE id = $2 RETURNING `+subscriberColumns, nonNil(tags), id)
}
