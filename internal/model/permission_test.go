package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePermissions(t *testing.T) {
	cases := []struct {
		name string
		set  []Permission
		want string
	}{
		{"empty", nil, ""},
		{"single", []Permission{PermissionAdmin}, "100"},
		{"sorted output", []Permission{PermissionAdmin, PermissionPersonalRead, PermissionPersonalWrite}, "1,2,100"},
		{"duplicates collapsed", []Permission{2, 1, 2, 1}, "1,2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EncodePermissions(tc.set))
		})
	}
}

func TestParsePermissions(t *testing.T) {
	got, err := ParsePermissions("1,2,100")
	require.NoError(t, err)
	assert.Equal(t, []Permission{1, 2, 100}, got)

	got, err = ParsePermissions(" 1 , 2 ")
	require.NoError(t, err)
	assert.Equal(t, []Permission{1, 2}, got)

	got, err = ParsePermissions("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParsePermissions("1,,2")
	require.NoError(t, err)
	assert.Equal(t, []Permission{1, 2}, got)

	_, err = ParsePermissions("1,admin")
	require.Error(t, err, "a malformed segment must fail the parse")
}

func TestPermissionsRoundTrip(t *testing.T) {
	original := []Permission{PermissionUsersListing, PermissionPersonalRead, PermissionPersonalRead}
	parsed, err := ParsePermissions(EncodePermissions(original))
	require.NoError(t, err)
	assert.Equal(t, []Permission{1, 3}, parsed)
}

func TestHasPermission(t *testing.T) {
	set := DefaultPermissions()
	assert.True(t, HasPermission(set, PermissionPersonalRead))
	assert.True(t, HasPermission(set, PermissionPersonalWrite))
	assert.False(t, HasPermission(set, PermissionAdmin))
	assert.False(t, HasPermission(nil, PermissionPersonalRead))
}
