package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oscroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:8765", cfg.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Log.Outputs)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
listen: 0.0.0.0:9000
read_timeout: 250ms
metrics_addr: 127.0.0.1:9100
log:
  level: debug
  format: json
  outputs: [stdout]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, 250*time.Millisecond, cfg.ReadTimeout)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"stdout"}, cfg.Log.Outputs)
	assert.Equal(t, 50, cfg.Log.Rotation.MaxSizeMB, "unset values keep their default")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "listen: 127.0.0.1:9000\n")
	t.Setenv("OSCROUTE_LISTEN", "127.0.0.1:9001")
	t.Setenv("OSCROUTE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9001", cfg.Listen)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad_level", "log:\n  level: loud\n", "log.level"},
		{"bad_format", "log:\n  format: xml\n", "log.format"},
		{"bad_listen", "listen: nowhere\n", "listen address"},
		{"bad_metrics", "metrics_addr: nowhere\n", "metrics_addr"},
		{"bad_yaml", "listen: [\n", "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Listen = "127.0.0.1:7000"
	cfg.ReadTimeout = 2 * time.Second

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "listen: 127.0.0.1:7000")
	assert.Contains(t, string(data), "read_timeout: 2s")

	got, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
