package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, classify(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "admins_user_id_key"}), ErrDuplicate)
	assert.ErrorIs(t, classify(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}), ErrNotFound)
	assert.ErrorIs(t, classify(&pgconn.PgError{Code: pgerrcode.CheckViolation}), ErrInvalid)

	other := errors.New("connection reset")
	assert.Equal(t, other, classify(other))
}
