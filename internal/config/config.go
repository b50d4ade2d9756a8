package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; nested structs group the settings of one
// collaborator so they can be handed to its constructor unchanged.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	StoreDriver string // mongo | mysql | memory
	Mongo       MongoConfig
	MySQL       MySQLConfig

	Admin      AdminConfig
	Cloudinary CloudinaryConfig
	Logging    LoggingConfig

	RabbitURL    string   // empty disables reservation/contact notifications
	KafkaBrokers []string // empty disables the admin audit stream
	KafkaTopic   string

	CORSOrigins []string
	TrustProxy  bool // honour X-Forwarded-For from private-network proxies
}

// MongoConfig describes the document store connection.
type MongoConfig struct {
	URI      string
	Database string
}

// MySQLConfig mirrors the discrete DB_* variables used to build a DSN.
type MySQLConfig struct {
	User string
	Pass string // optional
	Host string
	Port string
	Name string
}

// AdminConfig carries the single admin credential and the token settings.
type AdminConfig struct {
	Username     string
	Password     string // plain text, used when PasswordHash is empty
	PasswordHash string // bcrypt hash, preferred when present
	JWTSecret    string
	TokenTTL     time.Duration
}

// CloudinaryConfig holds the three image host credentials.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Enabled reports whether all credentials are present.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// LoggingConfig controls the slog handler and the log file directory.
type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

// Load reads configuration values from environment variables. Every missing
// required variable is reported in a single joined error so a misconfigured
// deployment can be fixed in one pass.
func Load() (Config, error) {
	env := &collector{}
	cfg := Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8080"),
		Admin: AdminConfig{
			Username:     env.require("ADMIN_USERNAME"),
			Password:     os.Getenv("ADMIN_PASSWORD"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:    env.require("JWT_SECRET"),
			TokenTTL:     envDur("TOKEN_TTL", 24*time.Hour),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Logging:      loadLogging(),
		RabbitURL:    firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   envStr("KAFKA_AUDIT_TOPIC", "content.changes"),
		CORSOrigins:  splitList(envStr("CORS_ALLOW_ORIGINS", "*")),
		TrustProxy:   envBool("TRUST_PROXY", false),
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		env.missing = append(env.missing, errors.New("missing required env var: ADMIN_PASSWORD or ADMIN_PASSWORD_HASH"))
	}
	loadStore(&cfg, env)

	if err := env.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadStore reads only the store and logging settings. cmd/seed uses it so
// seeding does not require admin credentials.
func LoadStore() (Config, error) {
	env := &collector{}
	cfg := Config{Env: envStr("APP_ENV", "dev"), Logging: loadLogging()}
	loadStore(&cfg, env)
	if err := env.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadLogging() LoggingConfig {
	return LoggingConfig{
		Level:     envStr("LOG_LEVEL", "info"),
		Format:    envStr("LOG_FORMAT", "text"),
		Directory: envStr("LOG_DIR", "./logs"),
	}
}

func loadStore(cfg *Config, env *collector) {
	cfg.StoreDriver = strings.ToLower(envStr("STORE_DRIVER", DriverMongo))
	switch cfg.StoreDriver {
	case DriverMongo:
		cfg.Mongo = MongoConfig{
			URI:      env.require("MONGODB_URI"),
			Database: envStr("MONGODB_DATABASE", "storefront"),
		}
	case DriverMySQL:
		cfg.MySQL = MySQLConfig{
			User: env.require("DB_USER"),
			Pass: os.Getenv("DB_PASS"),
			Host: env.require("DB_HOST"),
			Port: env.require("DB_PORT"),
			Name: env.require("DB_NAME"),
		}
	case DriverMemory:
	default:
		env.missing = append(env.missing, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver))
	}
}

// collector accumulates missing variables.
type collector struct {
	missing []error
}

func (c *collector) require(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		c.missing = append(c.missing, fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

func (c *collector) err() error {
	return errors.Join(c.missing...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
