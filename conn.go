package store

import (
	"net"
	"net/url"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PGConfig describes a PostgreSQL server. The connection opened from it
// belongs to the caller, who is responsible for closing it.
type PGConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	SSLMode  string
}

// PGConfigFromEnv reads the libpq environment variables PGHOST, PGPORT,
// PGDATABASE, PGUSER, PGPASSWORD and PGSSLMODE.
func PGConfigFromEnv() PGConfig {
	return PGConfig{
		Host:     envOr("PGHOST", "localhost"),
		Port:     envOr("PGPORT", "5432"),
		Database: os.Getenv("PGDATABASE"),
		User:     os.Getenv("PGUSER"),
		Password: os.Getenv("PGPASSWORD"),
		SSLMode:  envOr("PGSSLMODE", "disable"),
	}
}

func (c PGConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	return u.String()
}

// ConnectPostgresql opens a pool through the pgx stdlib driver.
func ConnectPostgresql(config PGConfig) (*sqlx.DB, error) {
	return sqlx.Open("pgx", config.DSN())
}

// ConnectPostgresqlPQ opens a pool through lib/pq.
func ConnectPostgresqlPQ(config PGConfig) (*sqlx.DB, error) {
	return sqlx.Open("postgres", config.DSN())
}

func envOr(key string, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}
