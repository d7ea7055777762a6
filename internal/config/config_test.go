package config

import (
	"errors"
	"testing"
)

func TestValidateRuntime(t *testing.T) {
	cfg := &Config{}
	err := cfg.ValidateRuntime()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("ValidateRuntime() error = %v, want *ConfigError", err)
	}
	if cfgErr.Variable != EnvAccessToken {
		t.Errorf("ValidateRuntime() variable = %q, want %q", cfgErr.Variable, EnvAccessToken)
	}

	cfg.AccessToken = "token"
	if err := cfg.ValidateRuntime(); err != nil {
		t.Errorf("ValidateRuntime() with token = %v, want nil", err)
	}
}

func TestValidateAuth(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantMissing string
	}{
		{
			name:        "missing client ID",
			cfg:         Config{ClientSecret: "secret"},
			wantMissing: EnvClientID,
		},
		{
			name:        "missing client secret",
			cfg:         Config{ClientID: "id"},
			wantMissing: EnvClientSecret,
		},
		{
			name: "complete",
			cfg:  Config{ClientID: "id", ClientSecret: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateAuth()
			if tt.wantMissing == "" {
				if err != nil {
					t.Errorf("ValidateAuth() = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ValidateAuth() error = %v, want *ConfigError", err)
			}
			if cfgErr.Variable != tt.wantMissing {
				t.Errorf("ValidateAuth() variable = %q, want %q", cfgErr.Variable, tt.wantMissing)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TICKTICK_TEST_VAR", "set")
	if got := getEnv("TICKTICK_TEST_VAR", "fallback"); got != "set" {
		t.Errorf("getEnv() = %q, want %q", got, "set")
	}
	if got := getEnv("TICKTICK_UNSET_VAR", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q, want %q", got, "fallback")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvAccessToken, "tok")
	t.Setenv(EnvRedirectURI, "")

	cfg := Load()
	if cfg.AccessToken != "tok" {
		t.Errorf("Load() AccessToken = %q, want %q", cfg.AccessToken, "tok")
	}
	if cfg.RedirectURI != DefaultRedirectURI {
		t.Errorf("Load() RedirectURI = %q, want default %q", cfg.RedirectURI, DefaultRedirectURI)
	}
}
