package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultUsesXDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := Default()
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/xdg-data/shoplist/shopping.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/xdg-data/shoplist/shoplist.log", cfg.Logging.File)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "classic", cfg.UI.Theme)
	require.NoError(t, cfg.Validate())
}

func TestLoadYAMLWithEnvExpansion(t *testing.T) {
	t.Setenv("SHOP_DIR", "/srv/shop")
	p := writeFile(t, "config.yaml", `
database:
  driver: json
  path: ${SHOP_DIR}/list.json
logging:
  level: debug
  format: json
ui:
  theme: neon
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Database.Driver)
	assert.Equal(t, "/srv/shop/list.json", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "neon", cfg.UI.Theme)
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "config.toml", `
[database]
driver = "sqlite3"
path = "/var/lib/shop.db"

[ui]
theme = "mono"
no_color = true
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "/var/lib/shop.db", cfg.Database.Path)
	assert.Equal(t, "mono", cfg.UI.Theme)
	assert.True(t, cfg.UI.NoColor)
	// untouched sections keep their defaults
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"driver": "database:\n  driver: postgres\n",
		"level":  "logging:\n  level: loud\n",
		"format": "logging:\n  format: xml\n",
		"theme":  "ui:\n  theme: pink\n",
		"path":   "database:\n  driver: sqlite\n  path: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", body))
			assert.ErrorContains(t, err, "validating config")
		})
	}
}

func TestLoadRejectsBrokenSyntax(t *testing.T) {
	_, err := Load(writeFile(t, "config.yaml", "database: [oops"))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestMemoryDriverNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Database = DatabaseConfig{Driver: "memory"}
	assert.NoError(t, cfg.Validate())
}

func TestResolve(t *testing.T) {
	t.Run("missing default file falls back to defaults", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("env var wins over default location", func(t *testing.T) {
		p := writeFile(t, "env.yaml", "ui:\n  theme: mono\n")
		t.Setenv(EnvConfig, p)

		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "mono", cfg.UI.Theme)
	})

	t.Run("explicit path wins and must exist", func(t *testing.T) {
		t.Setenv(EnvConfig, writeFile(t, "env.yaml", "ui:\n  theme: mono\n"))

		cfg, err := Resolve(writeFile(t, "flag.yaml", "ui:\n  theme: neon\n"))
		require.NoError(t, err)
		assert.Equal(t, "neon", cfg.UI.Theme)

		_, err = Resolve(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
