package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 30000.0, cfg.MinPrice)
	assert.Equal(t, 5000, cfg.Sample.Size)
	assert.Equal(t, int64(42), cfg.Sample.Seed)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yml := `data_dir: /srv/property
min_price: 50000
color: never
gazetteer:
  path: areas.shp
  name_field: LABEL
sample:
  size: 100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(yml), 0644))
	t.Setenv("PROPMARKET_MIN_PRICE", "10000")
	t.Setenv("PROPMARKET_GAZETTEER_CODE_FIELD", "PC")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/property", cfg.DataDir)
	assert.Equal(t, 10000.0, cfg.MinPrice, "environment wins over file")
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "areas.shp", cfg.Gazetteer.Path)
	assert.Equal(t, "PC", cfg.Gazetteer.CodeField)
	assert.Equal(t, "LABEL", cfg.Gazetteer.NameField)
	assert.Equal(t, 100, cfg.Sample.Size)
	assert.Equal(t, int64(42), cfg.Sample.Seed, "unset keys keep defaults")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("PROPMARKET_LOG_LEVEL=debug\nPROPMARKET_DATA_DIR=fromdotenv\n"), 0644))
	// Already-set variables are not overridden by .env.
	t.Setenv("PROPMARKET_DATA_DIR", "fromenv")
	t.Setenv("PROPMARKET_LOG_LEVEL", "")
	os.Unsetenv("PROPMARKET_LOG_LEVEL")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "fromenv", cfg.DataDir)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_price: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"color always", func(c *Config) { c.Color = "ALWAYS" }, true},
		{"empty data dir", func(c *Config) { c.DataDir = " " }, false},
		{"negative floor", func(c *Config) { c.MinPrice = -1 }, false},
		{"bad color", func(c *Config) { c.Color = "sometimes" }, false},
		{"negative sample", func(c *Config) { c.Sample.Size = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadIgnoresUnprefixedEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PATH", "/usr/bin")
	t.Setenv("COLOR", "sometimes")
	t.Setenv("DATA_DIR", "elsewhere")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Gazetteer.Path)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "data", cfg.DataDir)
}
