package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsValid(t *testing.T) {
	for _, r := range []Role{RoleIntern, RoleEngineer, RoleAdmin} {
		assert.True(t, r.IsValid(), r)
	}
	for _, r := range []Role{"", "admin", "OWNER"} {
		assert.False(t, r.IsValid(), r)
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = ParseRole("ENGINEER")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, RoleEngineer, *r)

	_, err = ParseRole("engineer")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserPatch_Columns(t *testing.T) {
	assert.True(t, UserPatch{}.Empty())
	assert.Empty(t, UserPatch{}.Columns())

	name := "Jane"
	role := RoleAdmin
	p := UserPatch{Name: &name, Role: &role}
	assert.False(t, p.Empty())
	assert.Equal(t, map[string]any{"name": "Jane", "role": "ADMIN"}, p.Columns())
}
