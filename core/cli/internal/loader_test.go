package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/reportdeck/core/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, Finalize(cfg, Overrides{}))

	assert.Equal(t, config.DefaultConnectionString, cfg.Database.ConnectionString)
	assert.Equal(t, config.ConnectorPostgres, cfg.Database.EffectiveConnector())
	assert.Empty(t, cfg.Catalog)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("REPORTDECK_TEST_DB_PATH", "/tmp/slf.db")
	path := filepath.Join(t.TempDir(), "reportdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: slf
database:
  connection_string: "sqlite://{{ env.REPORTDECK_TEST_DB_PATH }}"
catalog: ./reports.yaml
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, Finalize(cfg, Overrides{}))

	assert.Equal(t, "sqlite:///tmp/slf.db", cfg.Database.ConnectionString)
	assert.Equal(t, "./reports.yaml", cfg.Catalog)
}

func TestFinalize_Overrides(t *testing.T) {
	cfg := &config.Config{
		Database: config.Database{Connector: config.ConnectorPostgres, ConnectionString: "host=localhost"},
		Catalog:  "file.yaml",
	}

	require.NoError(t, Finalize(cfg, Overrides{Database: "mysql://root@db/slf", Catalog: "flag.yaml"}))

	assert.Equal(t, "mysql://root@db/slf", cfg.Database.ConnectionString)
	assert.Equal(t, config.ConnectorMySQL, cfg.Database.EffectiveConnector())
	assert.Equal(t, "flag.yaml", cfg.Catalog)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading file")

	_, err = LoadConfigFromBytes([]byte("database:\n  connection_string: \"{{ env.REPORTDECK_TEST_NOT_SET }}\"\n"))
	assert.ErrorContains(t, err, "REPORTDECK_TEST_NOT_SET")

	cfg, err := LoadConfigFromBytes([]byte("database:\n  connection_string: \"oracle://db\"\n"))
	require.NoError(t, err)
	assert.Error(t, Finalize(cfg, Overrides{}))
}
