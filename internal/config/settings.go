package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Settings holds the process configuration for cmd/server.
type Settings struct {
	HTTPAddr       string
	StoreDriver    string
	SQLitePath     string
	ElectionConfig string
	AdminPIN       string
	CORSOrigins    []string
	Postgres       PostgresSettings
}

type PostgresSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

func (p PostgresSettings) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

// ParseSettings reads flags from args, falling back to the environment.
// Flags win over environment variables.
func ParseSettings(args []string) (Settings, error) {
	var s Settings
	var origins string

	fs := flag.NewFlagSet("esr-election", flag.ContinueOnError)
	fs.StringVar(&s.HTTPAddr, "addr", envOr("HTTP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&s.StoreDriver, "store", envOr("STORE_DRIVER", DriverSQLite), "Ballot store driver (sqlite, postgres or memory)")
	fs.StringVar(&s.SQLitePath, "sqlite-path", envOr("SQLITE_PATH", "esr-election.db"), "SQLite database file")
	fs.StringVar(&s.ElectionConfig, "election", os.Getenv("ELECTION_CONFIG"), "Election config YAML (built-in when empty)")
	fs.StringVar(&s.AdminPIN, "admin-pin", os.Getenv("ADMIN_PIN"), "Admin PIN, overrides the election config")
	fs.StringVar(&origins, "cors-origins", envOr("CORS_ORIGINS", "*"), "Comma-separated allowed origins")
	fs.StringVar(&s.Postgres.Host, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	fs.StringVar(&s.Postgres.Port, "db-port", envOr("POSTGRES_PORT", "5432"), "Database port")
	fs.StringVar(&s.Postgres.User, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	fs.StringVar(&s.Postgres.Password, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	fs.StringVar(&s.Postgres.DB, "db-name", os.Getenv("POSTGRES_DB"), "Database name")

	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			s.CORSOrigins = append(s.CORSOrigins, o)
		}
	}

	switch s.StoreDriver {
	case DriverSQLite:
		if s.SQLitePath == "" {
			return Settings{}, errors.New("sqlite path required (use -sqlite-path or SQLITE_PATH env)")
		}
	case DriverPostgres:
		if s.Postgres.Host == "" || s.Postgres.DB == "" {
			return Settings{}, errors.New("postgres store requires POSTGRES_HOST and POSTGRES_DB")
		}
	case DriverMemory:
	default:
		return Settings{}, fmt.Errorf("unknown store driver %q", s.StoreDriver)
	}

	return s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
