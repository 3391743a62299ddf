package auth

import (
	"os"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Environment variables read by LoadConfig
const (
	EnvSigningSecret = "AUTH_SIGNING_SECRET"
	EnvTokenTTL      = "AUTH_TOKEN_TTL"
	EnvIssuer        = "AUTH_ISSUER"
	EnvAudience      = "AUTH_AUDIENCE"
)

// AppConfig is the immutable configuration object handed to constructors at
// startup. There is no ambient lookup: load it once, pass it down.
type AppConfig struct {
	SigningKey    string
	SigningMethod string
	TokenTTL      time.Duration
	Issuer        string
	Audience      []string
	ContextKey    string
	AuthScheme    string
}

// Verify interface compliance
var _ Config = (*AppConfig)(nil)

func (c *AppConfig) GetSigningKey() string { return c.SigningKey }

func (c *AppConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c *AppConfig) GetTokenTTL() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}

func (c *AppConfig) GetIssuer() string { return c.Issuer }

func (c *AppConfig) GetAudience() []string { return c.Audience }

func (c *AppConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c *AppConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

// NewConfig builds a config with defaults for everything but the signing key.
// An empty key is rejected here rather than surfacing later as forged-token
// acceptance.
func NewConfig(signingKey string) (*AppConfig, error) {
	if strings.TrimSpace(signingKey) == "" {
		return nil, ErrMissingSigningSecret
	}
	return &AppConfig{
		SigningKey: signingKey,
		TokenTTL:   DefaultTokenTTL,
	}, nil
}

// LoadConfig reads configuration from the process environment. A missing
// signing secret is fatal; we never run on a built-in default.
func LoadConfig() (*AppConfig, error) {
	cfg, err := NewConfig(os.Getenv(EnvSigningSecret))
	if err != nil {
		return nil, err
	}

	if raw := os.Getenv(EnvTokenTTL); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "invalid "+EnvTokenTTL).
				WithMetadata(map[string]any{"value": raw})
		}
		if ttl <= 0 {
			return nil, goerrors.New("token TTL must be positive", goerrors.CategoryOperation).
				WithMetadata(map[string]any{"value": raw})
		}
		cfg.TokenTTL = ttl
	}

	cfg.Issuer = os.Getenv(EnvIssuer)

	if raw := os.Getenv(EnvAudience); raw != "" {
		for _, aud := range strings.Split(raw, ",") {
			if aud = strings.TrimSpace(aud); aud != "" {
				cfg.Audience = append(cfg.Audience, aud)
			}
		}
	}

	return cfg, nil
}
