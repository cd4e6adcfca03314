package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Fyle: FyleConfig{
			BaseURL:      "https://app.fylehq.com",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "refresh-token",
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(cfg *Config) { cfg.Fyle.BaseURL = "" },
			wantErr: "fyle.base_url is required",
		},
		{
			name:    "missing client id",
			mutate:  func(cfg *Config) { cfg.Fyle.ClientID = "" },
			wantErr: "fyle.client_id is required",
		},
		{
			name:    "placeholder client secret",
			mutate:  func(cfg *Config) { cfg.Fyle.ClientSecret = "your-client-secret-here" },
			wantErr: "fyle.client_secret must be set",
		},
		{
			name:    "missing refresh token",
			mutate:  func(cfg *Config) { cfg.Fyle.RefreshToken = "" },
			wantErr: "fyle.refresh_token is required",
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *Config) { cfg.HTTP.Timeout = 0 },
			wantErr: "http.timeout must be positive",
		},
		{
			name:    "invalid level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		chdir(t, t.TempDir())

		path := filepath.Join(t.TempDir(), "fylectl.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
fyle:
  base_url: https://staging.fylehq.com
  client_id: file-client
  client_secret: file-secret
  refresh_token: file-refresh
http:
  timeout: 5s
logging:
  level: debug
  format: json
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://staging.fylehq.com", cfg.Fyle.BaseURL)
		assert.Equal(t, "file-client", cfg.Fyle.ClientID)
		assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("FYLE_CLIENT_SECRET", "env-secret")
		t.Setenv("FYLE_HTTP_TIMEOUT", "12s")

		path := filepath.Join(t.TempDir(), "fylectl.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
fyle:
  client_id: file-client
  client_secret: file-secret
  refresh_token: file-refresh
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-secret", cfg.Fyle.ClientSecret)
		assert.Equal(t, 12*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, "https://app.fylehq.com", cfg.Fyle.BaseURL)
	})

	t.Run("environment only, from .env", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
			"FYLE_CLIENT_ID=dotenv-client\nFYLE_CLIENT_SECRET=dotenv-secret\nFYLE_REFRESH_TOKEN=dotenv-refresh\n",
		), 0o600))
		// godotenv sets process variables; register them for cleanup.
		t.Setenv("FYLE_CLIENT_ID", "")
		t.Setenv("FYLE_CLIENT_SECRET", "")
		t.Setenv("FYLE_REFRESH_TOKEN", "")
		os.Unsetenv("FYLE_CLIENT_ID")
		os.Unsetenv("FYLE_CLIENT_SECRET")
		os.Unsetenv("FYLE_REFRESH_TOKEN")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "dotenv-client", cfg.Fyle.ClientID)
		assert.Equal(t, "dotenv-secret", cfg.Fyle.ClientSecret)
		assert.Equal(t, "dotenv-refresh", cfg.Fyle.RefreshToken)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		chdir(t, t.TempDir())

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("missing credentials fail validation", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("FYLE_CLIENT_ID", "")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
