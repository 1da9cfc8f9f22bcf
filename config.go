package jwtkit

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// VerifierConfig describes a Verification in a configuration file.
type VerifierConfig struct {
	// Issuers accepted in iss. Empty accepts any issuer.
	Issuers []string `yaml:"issuers" json:"issuers"`

	// Audience values of which at least one must appear in aud.
	Audience []string `yaml:"audience" json:"audience"`

	Subject string `yaml:"subject" json:"subject"`
	JWTID   string `yaml:"jwt_id" json:"jwt_id"`

	// Leeway applies to every time claim without a specific leeway.
	Leeway time.Duration `yaml:"leeway" json:"leeway"`

	IssuedAtLeeway  *time.Duration `yaml:"issued_at_leeway" json:"issued_at_leeway"`
	ExpiresAtLeeway *time.Duration `yaml:"expires_at_leeway" json:"expires_at_leeway"`
	NotBeforeLeeway *time.Duration `yaml:"not_before_leeway" json:"not_before_leeway"`

	AllowNone bool `yaml:"allow_none" json:"allow_none"`

	// Encoding of the signature segment: base64url (default), base16 or base32.
	Encoding string `yaml:"encoding" json:"encoding"`

	// RequiredClaims maps claim names to the value they must hold.
	RequiredClaims map[string]any `yaml:"required_claims" json:"required_claims"`

	// RequiredPresence lists claims that must be set.
	RequiredPresence []string `yaml:"required_presence" json:"required_presence"`
}

// DefaultVerifierConfig returns a configuration with no claim requirements
// and no leeway.
func DefaultVerifierConfig() VerifierConfig {
	return VerifierConfig{Encoding: Base64URL.String()}
}

// LoadVerifierConfig reads a YAML configuration file.
func LoadVerifierConfig(path string) (*VerifierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseVerifierConfig(data)
}

// ParseVerifierConfig decodes and validates a YAML configuration.
func ParseVerifierConfig(data []byte) (*VerifierConfig, error) {
	cfg := DefaultVerifierConfig()
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration without building a Verification.
func (c *VerifierConfig) Validate() error {
	if c == nil {
		return illegalArgument("config", "the config cannot be nil")
	}
	if c.Leeway < 0 {
		return illegalArgument("leeway", "leeway value can't be negative")
	}
	for name, d := range map[string]*time.Duration{
		"issued_at_leeway":  c.IssuedAtLeeway,
		"expires_at_leeway": c.ExpiresAtLeeway,
		"not_before_leeway": c.NotBeforeLeeway,
	} {
		if d != nil && *d < 0 {
			return illegalArgument(name, "leeway value can't be negative")
		}
	}
	if _, err := ParseEncoding(c.Encoding); err != nil {
		return err
	}
	for name, value := range c.RequiredClaims {
		if name == "" {
			return illegalArgument("required_claims", "the custom claim's name can't be empty")
		}
		if _, _, err := expectedValues(value); err != nil {
			return illegalArgument(name, "%v", err)
		}
	}
	for _, name := range c.RequiredPresence {
		if name == "" {
			return illegalArgument("required_presence", "the custom claim's name can't be empty")
		}
	}
	return nil
}

// Verification returns a Verification for alg configured from c.
func (c *VerifierConfig) Verification(alg Algorithm) (*Verification, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	enc, _ := ParseEncoding(c.Encoding)

	v := Require(alg).
		AcceptLeeway(c.Leeway).
		AllowNone(c.AllowNone).
		WithEncoding(enc)

	if len(c.Issuers) > 0 {
		v.WithIssuer(c.Issuers...)
	}
	if len(c.Audience) > 0 {
		v.WithAudience(c.Audience...)
	}
	if c.Subject != "" {
		v.WithSubject(c.Subject)
	}
	if c.JWTID != "" {
		v.WithJWTID(c.JWTID)
	}
	if c.IssuedAtLeeway != nil {
		v.AcceptIssuedAt(*c.IssuedAtLeeway)
	}
	if c.ExpiresAtLeeway != nil {
		v.AcceptExpiresAt(*c.ExpiresAtLeeway)
	}
	if c.NotBeforeLeeway != nil {
		v.AcceptNotBefore(*c.NotBeforeLeeway)
	}
	for _, name := range sortedKeys(c.RequiredClaims) {
		v.RequireClaim(name, c.RequiredClaims[name])
	}
	for _, name := range c.RequiredPresence {
		v.WithClaimPresence(name)
	}
	return v, v.Err()
}

func sortedKeys(m map[string]any) []string {
	return Claims{values: m}.Names()
}
