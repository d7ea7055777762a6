package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names read by Load.
const (
	EnvAccessToken  = "TICKTICK_ACCESS_TOKEN"
	EnvClientID     = "TICKTICK_CLIENT_ID"
	EnvClientSecret = "TICKTICK_CLIENT_SECRET"
	EnvRedirectURI  = "TICKTICK_REDIRECT_URI"
)

// DefaultRedirectURI must match the redirect URI registered with the
// TickTick developer console for the OAuth app.
const DefaultRedirectURI = "http://localhost:8080/callback"

// Config holds the TickTick credentials. AccessToken is what the server
// needs at runtime; the client ID/secret pair is only used by the one-time
// OAuth bootstrap.
type Config struct {
	AccessToken  string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// ConfigError reports a missing or invalid configuration value together
// with guidance on how to supply it.
type ConfigError struct {
	Variable string
	Hint     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing configuration: %s is not set (%s)", e.Variable, e.Hint)
}

// Load reads configuration from a .env file in the working directory (if
// present) and the process environment. Values already set in the
// environment take precedence over the .env file.
func Load() *Config {
	// A missing .env file is not an error; the environment may carry
	// everything.
	_ = godotenv.Load(".env")

	return &Config{
		AccessToken:  os.Getenv(EnvAccessToken),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		RedirectURI:  getEnv(EnvRedirectURI, DefaultRedirectURI),
	}
}

// ValidateRuntime checks that the config can serve API requests
func (c *Config) ValidateRuntime() error {
	if c.AccessToken == "" {
		return &ConfigError{
			Variable: EnvAccessToken,
			Hint:     "run 'ticktick-mcp auth' to obtain one",
		}
	}
	return nil
}

// ValidateAuth checks that the config can run the OAuth bootstrap
func (c *Config) ValidateAuth() error {
	if c.ClientID == "" {
		return &ConfigError{
			Variable: EnvClientID,
			Hint:     "register an app at https://developer.ticktick.com and set it in .env",
		}
	}
	if c.ClientSecret == "" {
		return &ConfigError{
			Variable: EnvClientSecret,
			Hint:     "register an app at https://developer.ticktick.com and set it in .env",
		}
	}
	return nil
}

// getEnv returns the value of the environment variable or the fallback if
// it is unset or empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
