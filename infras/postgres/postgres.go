package postgres

//nolint:revive
import (
	"fmt"
	"lankaride/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one postgres server as configured under DB_POSTGRES_READ_* or DB_POSTGRES_WRITE_*.
type Endpoint struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Timezone string
}

// DSN renders the lib/pq URL. The session timezone keeps DATE and timestamptz
// comparisons on the same calendar as the application.
func (e Endpoint) DSN() string {
	query := url.Values{}
	query.Set("sslmode", e.SSLMode)

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Database,
		RawQuery: query.Encode(),
	}).String()
}

func New(config *config.Config) *Connection {
	write := connect(WriteEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)

	read := write
	if config.DB.Postgres.Read.Host != "" {
		read = connect(ReadEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
	}

	if read == nil || write == nil {
		log.Fatal().Msg("Could not establish postgres connections")
	}

	return &Connection{Read: read, Write: write}
}

// Close releases both pools. The read pool may alias the write pool.
func (c *Connection) Close() error {
	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			return fmt.Errorf("failed to close read pool: %w", err)
		}
	}

	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			return fmt.Errorf("failed to close write pool: %w", err)
		}
	}

	return nil
}

func getDBName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func sessionTimezone(config *config.Config, configured string) string {
	if configured != "" {
		return configured
	}

	return config.App.Timezone
}

func WriteEndpoint(config *config.Config) Endpoint {
	write := config.DB.Postgres.Write

	return Endpoint{
		Name:     "write",
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Database: getDBName(config, write.Name),
		SSLMode:  write.SSLMode,
		Timezone: sessionTimezone(config, write.Timezone),
	}
}

func ReadEndpoint(config *config.Config) Endpoint {
	read := config.DB.Postgres.Read

	return Endpoint{
		Name:     "read",
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Database: getDBName(config, read.Name),
		SSLMode:  read.SSLMode,
		Timezone: sessionTimezone(config, read.Timezone),
	}
}

func connect(endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Database).
		Logger()

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN())
		if err == nil {
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	return nil
}
