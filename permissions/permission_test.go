package permissions_test

import (
	"lankaride/permissions"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)

	for _, endpoint := range data.Endpoints {
		if strings.HasPrefix(endpoint.Path, "/api/v1/admin") {
			assert.False(t, endpoint.Skip, endpoint.Path)
			assert.Equal(t, []string{"admin"}, endpoint.Permissions, endpoint.Path)
		}
	}
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(`{
		"skip": false,
		"endpoints": [
			{"path": "/api/v1/vehicles/", "method": "GET", "permissions": [], "skip": true},
			{"path": "/api/v1/bookings/", "method": "POST", "permissions": ["guest"], "skip": false},
			{"path": "/api/v1/bookings/", "method": "POST", "permissions": ["admin"], "skip": false}
		]
	}`))
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		method    string
		role      string
		wantSkip  bool
		wantAllow bool
	}{
		{name: "public route", path: "/api/v1/vehicles/", method: http.MethodGet, wantSkip: true, wantAllow: true},
		{name: "role allowed", path: "/api/v1/bookings/", method: http.MethodPost, role: "guest", wantAllow: true},
		{name: "duplicate keeps first", path: "/api/v1/bookings/", method: http.MethodPost, role: "admin", wantAllow: false},
		{name: "method is case insensitive", path: "/api/v1/bookings/", method: "post", role: "guest", wantAllow: true},
		{name: "unlisted route admits any role", path: "/api/v1/me", method: http.MethodGet, role: "driver", wantAllow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)
			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantAllow, permission.Allows(tt.role))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{`))
	assert.Error(t, err)
}
