package helper_test

import (
	"lankaride/config"
	"lankaride/helper"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Username = "lanka"
	cfg.DB.Postgres.Write.Password = "p@ss:word"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "rides"
	cfg.DB.Postgres.Write.SSLMode = "disable"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"

	return cfg
}

func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		wantPath string
	}{
		{name: "no prefix", wantPath: "/rides"},
		{name: "with prefix", prefix: "test_", wantPath: "/test_rides"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.DB.Postgres.Prefix = tt.prefix

			parsed, err := url.Parse(helper.DatabaseURL(cfg))
			require.NoError(t, err)

			password, _ := parsed.User.Password()

			assert.Equal(t, "postgres", parsed.Scheme)
			assert.Equal(t, "db:5432", parsed.Host)
			assert.Equal(t, tt.wantPath, parsed.Path)
			assert.Equal(t, "lanka", parsed.User.Username())
			assert.Equal(t, "p@ss:word", password)
			assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
			assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
		})
	}
}

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(testConfig(), "sideways")

	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}
