package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const envPrefix = "SOCIALFEED"

// CommentDeletePolicy decides what happens to comment documents when the post
// (or the reference) that owns them is removed.
type CommentDeletePolicy string

const (
	// PolicyOrphan leaves comment documents in place.
	PolicyOrphan CommentDeletePolicy = "orphan"
	// PolicyCascade deletes comment documents together with their reference.
	PolicyCascade CommentDeletePolicy = "cascade"
)

// Config is read from the environment. Every key may be given with or without
// the SOCIALFEED_ prefix, e.g. SOCIALFEED_PORT or PORT.
type Config struct {
	MongoURI       string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB        string        `envconfig:"MONGO_DB" default:"socialfeed"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`

	Port        string   `envconfig:"PORT" default:"3000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	JWTSecret string `envconfig:"JWT_SECRET"`
	JWTIssuer string `envconfig:"JWT_ISSUER"`

	CommentDeletePolicy CommentDeletePolicy `envconfig:"COMMENT_DELETE_POLICY" default:"orphan"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment variables")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.CommentDeletePolicy {
	case PolicyOrphan, PolicyCascade:
	default:
		return errors.Errorf("unsupported COMMENT_DELETE_POLICY: %q", c.CommentDeletePolicy)
	}
	if c.MongoDB == "" {
		return errors.New("MONGO_DB must not be empty")
	}
	return nil
}
