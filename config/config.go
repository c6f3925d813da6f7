// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validEnvs      = []string{"development", "production"}
	validDrivers   = []string{"sqlite", "postgres"}
)

// minSecretLen is the shortest HS256 secret accepted, in bytes
const minSecretLen = 32

// GenSecret returns 64 random bytes hex encoded, suitable for jwt.secret
func GenSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Flags returns the flag set shared by every command
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (default ./config.toml)")
	fs.String("log-level", "", "overrides app.log_level")
	return fs
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup(flags *pflag.FlagSet) error {
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	// SetConfigName clears an explicit file, so --config is applied after it
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
		if f := flags.Lookup("log-level"); f != nil && f.Value.String() != "" {
			v.Set("app.log_level", f.Value.String())
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	//
	// ENVS that don't follow the KEY_PATH pattern
	//
	v.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")
	v.BindEnv("jwt.secret", "JWT_SECRET", "SECURITY_JWT_SECRET")
	v.BindEnv("cloudflare.turnstile.secret_token", "TURNSTILE_SECRET_TOKEN")

	//
	// Defaults
	//
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"*"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db?_busy_timeout=5000")

	v.SetDefault("jwt.issuer", "mind-trap-api")
	v.SetDefault("jwt.access_ttl", "15m")
	v.SetDefault("jwt.refresh_ttl", "168h")

	v.SetDefault("security.rate_limit", 10)
	v.SetDefault("security.body_limit", 1<<20)

	v.SetDefault("cache.redis_db", 0)

	v.SetDefault("cleanup.schedule", "@every 1h")

	v.SetDefault("alert.mail.enabled", false)
	v.SetDefault("mail.port", 587)

	v.SetDefault("cloudflare.turnstile.enabled", false)

	if err := v.ReadInConfig(); err != nil {
		// Everything can be supplied through the environment, so a missing
		// config.toml is fine. A broken one isn't.
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	return validate()
}

func validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if !slices.Contains(validEnvs, v.GetString("app.env")) {
		return errors.New("app.env must be development or production")
	}

	if v.GetInt("host.port") <= 0 || v.GetInt("host.port") > 65535 {
		return errors.New("invalid port provided")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if !slices.Contains(validDrivers, v.GetString("database.driver")) {
		return errors.New("database.driver must be sqlite or postgres")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database.dsn can't be empty")
	}

	secret := v.GetString("jwt.secret")
	if secret == "" {
		return errors.New("jwt.secret is not set. Generate one with the `secret` command and set it as JWT_SECRET or in config.toml")
	}

	if len(secret) < minSecretLen {
		return fmt.Errorf("jwt.secret must be at least %d bytes long", minSecretLen)
	}

	if v.GetDuration("jwt.access_ttl") <= 0 {
		return errors.New("jwt.access_ttl must be a positive duration")
	}

	if v.GetDuration("jwt.refresh_ttl") <= v.GetDuration("jwt.access_ttl") {
		return errors.New("jwt.refresh_ttl must be longer than jwt.access_ttl")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetInt64("security.body_limit") <= 0 {
		return errors.New("security.body_limit must be bigger than 0")
	}

	if v.GetBool("alert.mail.enabled") {
		if v.GetString("mail.host") == "" {
			return errors.New("mail.host is required when alert.mail.enabled is set")
		}

		if v.GetString("mail.sender") == "" {
			return errors.New("mail.sender is required when alert.mail.enabled is set")
		}
	}

	if v.GetBool("cloudflare.turnstile.enabled") && v.GetString("cloudflare.turnstile.secret_token") == "" {
		return errors.New("turnstile secret token is missing")
	}

	return nil
}
