package postgres_test

import (
	"lankaride/config"
	"lankaride/infras/postgres"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Timezone = "Asia/Colombo"
	cfg.DB.Postgres.Prefix = "staging_"
	cfg.DB.Postgres.Write.Host = "primary"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "rides"
	cfg.DB.Postgres.Write.Password = "s3cret/+"
	cfg.DB.Postgres.Write.Name = "lankaride"
	cfg.DB.Postgres.Write.SSLMode = "require"
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.DB.Postgres.Read.Port = "5433"
	cfg.DB.Postgres.Read.Name = "lankaride"
	cfg.DB.Postgres.Read.Timezone = "UTC"
	cfg.DB.Postgres.Read.SSLMode = "disable"

	tests := []struct {
		name         string
		endpoint     postgres.Endpoint
		wantHost     string
		wantTimezone string
		wantSSL      string
	}{
		{name: "write inherits app timezone", endpoint: postgres.WriteEndpoint(cfg), wantHost: "primary:5432", wantTimezone: "Asia/Colombo", wantSSL: "require"},
		{name: "read keeps its own timezone", endpoint: postgres.ReadEndpoint(cfg), wantHost: "replica:5433", wantTimezone: "UTC", wantSSL: "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := url.Parse(tt.endpoint.DSN())
			require.NoError(t, err)

			assert.Equal(t, tt.wantHost, parsed.Host)
			assert.Equal(t, "/staging_lankaride", parsed.Path)
			assert.Equal(t, tt.wantTimezone, parsed.Query().Get("timezone"))
			assert.Equal(t, tt.wantSSL, parsed.Query().Get("sslmode"))
		})
	}

	parsed, err := url.Parse(postgres.WriteEndpoint(cfg).DSN())
	require.NoError(t, err)

	password, _ := parsed.User.Password()
	assert.Equal(t, "s3cret/+", password)
}

func TestEndpoint_DSN_NoTimezone(t *testing.T) {
	endpoint := postgres.Endpoint{Host: "localhost", Port: "5432", Database: "db", SSLMode: "disable"}

	parsed, err := url.Parse(endpoint.DSN())
	require.NoError(t, err)

	assert.False(t, parsed.Query().Has("timezone"))
}
