package signature

import (
	"fmt"
	"os"
)

const (
	MethodPassword = "password"
	MethodOIDC     = "oidc"
)

// Config selects and parameterizes the signature verifier.
type Config struct {
	Method string     `toml:"method"`
	OIDC   OIDCConfig `toml:"oidc"`
}

// OIDCConfig holds OIDC provider parameters, used when Method is "oidc".
type OIDCConfig struct {
	IssuerURL string `toml:"issuer_url"`
	ClientID  string `toml:"client_id"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Method        string
	OIDCIssuerURL string
	OIDCClientID  string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Method != "" {
		c.Method = overlay.Method
	}
	if overlay.OIDC.IssuerURL != "" {
		c.OIDC.IssuerURL = overlay.OIDC.IssuerURL
	}
	if overlay.OIDC.ClientID != "" {
		c.OIDC.ClientID = overlay.OIDC.ClientID
	}
}

func (c *Config) loadDefaults() {
	if c.Method == "" {
		c.Method = MethodPassword
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Method != "" {
		if v := os.Getenv(env.Method); v != "" {
			c.Method = v
		}
	}
	if env.OIDCIssuerURL != "" {
		if v := os.Getenv(env.OIDCIssuerURL); v != "" {
			c.OIDC.IssuerURL = v
		}
	}
	if env.OIDCClientID != "" {
		if v := os.Getenv(env.OIDCClientID); v != "" {
			c.OIDC.ClientID = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Method {
	case MethodPassword:
	case MethodOIDC:
		if c.OIDC.IssuerURL == "" {
			return fmt.Errorf("oidc issuer_url required")
		}
		if c.OIDC.ClientID == "" {
			return fmt.Errorf("oidc client_id required")
		}
	default:
		return fmt.Errorf("unknown signature method: %s", c.Method)
	}
	return nil
}
