package auth

import (
	"context"
	"testing"

	"academy_portal/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{UserID: "u1", Role: model.RoleStaff})
	p, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, model.RoleStaff, p.Role)
}

func TestPrincipal_IsStaff(t *testing.T) {
	assert.True(t, Principal{Role: model.RoleAdmin}.IsStaff())
	assert.True(t, Principal{Role: model.RoleStaff}.IsStaff())
	assert.False(t, Principal{Role: model.RoleCustomer}.IsStaff())
}
