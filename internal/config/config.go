// Package config manages environment variables.
//
// It reads variables from the process environment (and the `.env` file,
// when present), loads them into structured Go types and validates that
// required values are present so the rest of the backend can rely on them.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional blocks (auth cookie, observability).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

/*
	Keys are read with the KRINGE_ prefix, lowercased, and nested with "."
	e.g. KRINGE_SERVER.PORT -> server.port -> Config.Server.Port

	List values (cors origins, health checks) are comma separated:
	KRINGE_SERVER.CORS_ALLOWED_ORIGINS=http://localhost:3000,https://kringe.music
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "KRINGE_"

// Config is the root configuration object for the application.
//
// Auth, Integration and Observability are optional: zero values are
// completed by ApplyDefaults.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Mongo         MongoConfig          `koanf:"mongo" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// StaticDir is the directory holding index.html, login.html, playlists.html,
	// about.html and the styles/, scripts/, images/, music/ asset folders.
	StaticDir string `koanf:"static_dir"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// MongoConfig points at the document store holding the news feed.
type MongoConfig struct {
	URI      string `koanf:"uri" validate:"required"`
	Database string `koanf:"database" validate:"required"`
}

// AuthConfig stores session and cookie settings.
//
// SecretKey signs the session cookie. Keep it out of version control.
type AuthConfig struct {
	SecretKey    string        `koanf:"secret_key" validate:"required,min=16"`
	SessionTTL   time.Duration `koanf:"session_ttl"`
	CookieName   string        `koanf:"cookie_name"`
	CookieSecure bool          `koanf:"cookie_secure"`

	// CSRFEnabled turns on double-submit CSRF checks for mutating requests.
	// Off by default: deployed front-end scripts do not send the token yet.
	CSRFEnabled bool `koanf:"csrf_enabled"`
}

// IntegrationConfig holds third-party API credentials.
// An empty ResendAPIKey disables welcome emails.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
	SiteURL      string `koanf:"site_url"`
}

const (
	DefaultSessionTTL = 24 * time.Hour
	DefaultCookieName = "kringe_session"
	DefaultStaticDir  = "static"
	DefaultEmailFrom  = "Kringe-Music <onboarding@resend.dev>"
	DefaultSiteURL    = "http://localhost:8080"
)

// listKeys are koanf keys whose env value is a comma separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":         true,
	"observability.health_checks.checks": true,
}

// envKey converts KRINGE_SERVER.PORT into server.port.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// envValue splits list values so they unmarshal into []string.
func envValue(key, value string) (string, interface{}) {
	k := envKey(key)
	if listKeys[k] {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return k, out
	}
	return k, value
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults, and returns the resulting config.
//
// Any failure is fatal: the process cannot serve requests without a database,
// a session store and a signing key.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	mainConfig.ApplyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// ApplyDefaults fills optional settings that were left empty.
//
// The service name is always forced to "kringe-music" and the observability
// environment always follows Primary.Env so logs and traces agree.
func (c *Config) ApplyDefaults() {
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = DefaultSessionTTL
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = DefaultCookieName
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = DefaultStaticDir
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = DefaultEmailFrom
	}
	if c.Integration.SiteURL == "" {
		c.Integration.SiteURL = DefaultSiteURL
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}

// IsLocal reports whether the process runs on a developer machine.
// Local runs log SQL and skip migrations on boot.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
