package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/aeramu/sql-common/converter"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_file(t *testing.T) {
	path := writeFile(t, `
database:
  driver: postgres
  dsn: postgres://wallet@localhost/wallet
  schema: wallet
  trace_enabled: true
  command_timeout_seconds: 10
  compact_mode: legacy
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://wallet@localhost/wallet", cfg.Database.DSN)
	assert.Equal(t, "wallet", cfg.Database.Schema)
	assert.True(t, cfg.Database.TraceEnabled)
	assert.Equal(t, 10*time.Second, cfg.Database.CommandTimeout())
	assert.Equal(t, converter.Legacy, cfg.Database.Codec().Mode)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_envOverridesFile(t *testing.T) {
	path := writeFile(t, `
database:
  driver: postgres
  dsn: from-file
`)
	t.Setenv("SQLCOMMON_DATABASE__DSN", "from-env")
	t.Setenv("SQLCOMMON_DATABASE__COMMAND_TIMEOUT_SECONDS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.DSN)
	assert.Equal(t, 5*time.Second, cfg.Database.CommandTimeout())
}

func TestLoad_defaults(t *testing.T) {
	t.Setenv("SQLCOMMON_DATABASE__DRIVER", "sqlite")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Database.CommandTimeout())
	assert.Equal(t, converter.Strict, cfg.Database.Codec().Mode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_invalid(t *testing.T) {
	t.Setenv("SQLCOMMON_DATABASE__DRIVER", "oracle")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("SQLCOMMON_DATABASE__DRIVER", "sqlite")
	t.Setenv("SQLCOMMON_DATABASE__COMPACT_MODE", "loose")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	stderr = &buf
	t.Cleanup(func() { stderr = os.Stderr })

	log := LogConfig{Level: "warn"}.Logger()
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestDatabaseConfig_RegisterSerializers(t *testing.T) {
	t.Cleanup(func() { converter.RegisterCodec(converter.Money18) })

	DatabaseConfig{CompactMode: "legacy"}.RegisterSerializers()

	for _, name := range []string{converter.SerializerCompact, converter.SerializerPadded} {
		registered, ok := schema.GetSerializer(name)
		require.True(t, ok, name)
		serializer, ok := registered.(converter.Serializer)
		require.True(t, ok, name)
		assert.Equal(t, converter.Legacy, serializer.Codec.Mode, name)
	}
}
