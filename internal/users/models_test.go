package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"user", RoleUser, false},
		{"admin", RoleAdmin, false},
		{"", "", true},
		{"Admin", "", true},
		{"superuser", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseRole(%q)", tt.in)
			continue
		}
		assert.NoError(t, err, "ParseRole(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}
