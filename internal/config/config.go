// Package config handles configuration for the verifier server: defaults,
// environment overrides, then command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the verifier server.
type Config struct {
	// Addr is the bind address of the HTTP endpoint.
	Addr string
	// LogFile is the log destination; empty means stderr.
	LogFile string
	// ReplayWindow is how long after generation a proof stays acceptable.
	ReplayWindow time.Duration
	// ClockSkew is the tolerated forward skew on proof timestamps.
	ClockSkew time.Duration
	// MasterSecretFile holds the hex master secret the admin token-signing
	// key is derived from.
	MasterSecretFile string
	// AdminPasswordHash is the bcrypt hash of the admin password. Empty
	// disables the administrative endpoints.
	AdminPasswordHash string
	// AdminTokenTTL is the admin token lifetime.
	AdminTokenTTL time.Duration
	// TLSCertFile / TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.ReplayWindow = time.Hour
	c.ClockSkew = 2 * time.Minute
	c.MasterSecretFile = "master.secret"
	c.AdminTokenTTL = 15 * time.Minute
}

// Load builds a Config by applying defaults, then environment variables, then
// command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("AGEPROOF_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("AGEPROOF_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("AGEPROOF_REPLAY_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AGEPROOF_REPLAY_WINDOW: %w", err)
		}
		c.ReplayWindow = d
	}
	if v := os.Getenv("AGEPROOF_CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AGEPROOF_CLOCK_SKEW: %w", err)
		}
		c.ClockSkew = d
	}
	if v := os.Getenv("AGEPROOF_MASTER_SECRET_FILE"); v != "" {
		c.MasterSecretFile = v
	}
	if v := os.Getenv("AGEPROOF_ADMIN_PASSWORD_HASH"); v != "" {
		c.AdminPasswordHash = v
	}
	if v := os.Getenv("AGEPROOF_ADMIN_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AGEPROOF_ADMIN_TOKEN_TTL: %w", err)
		}
		c.AdminTokenTTL = d
	}
	if v := os.Getenv("AGEPROOF_TLS_CERT"); v != "" {
		c.TLSCertFile = v
	}
	if v := os.Getenv("AGEPROOF_TLS_KEY"); v != "" {
		c.TLSKeyFile = v
	}
	return nil
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("ageproof-server", flag.ContinueOnError)
	fs.StringVar(&c.Addr, "addr", c.Addr, "bind address")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "log file path (empty for stderr)")
	fs.DurationVar(&c.ReplayWindow, "replay-window", c.ReplayWindow, "proof replay window")
	fs.DurationVar(&c.ClockSkew, "clock-skew", c.ClockSkew, "tolerated forward clock skew on proof timestamps")
	fs.StringVar(&c.MasterSecretFile, "master-secret-file", c.MasterSecretFile, "file holding the hex master secret")
	fs.StringVar(&c.AdminPasswordHash, "admin-password-hash", c.AdminPasswordHash, "bcrypt hash of the admin password (empty disables admin endpoints)")
	fs.DurationVar(&c.AdminTokenTTL, "admin-token-ttl", c.AdminTokenTTL, "admin token lifetime")
	fs.StringVar(&c.TLSCertFile, "tls-cert", c.TLSCertFile, "TLS certificate file")
	fs.StringVar(&c.TLSKeyFile, "tls-key", c.TLSKeyFile, "TLS key file")
	return fs.Parse(args)
}
