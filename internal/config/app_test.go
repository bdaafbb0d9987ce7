package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_OptionalMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "paygo.yaml"), true)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadAppConfig_RequiredMissingFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "paygo.yaml"), false)
	assert.Error(t, err)
}

func TestLoadAppConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paygo.yaml")
	content := "company_name: Acme Bakery\nstore:\n  driver: yaml\n  path: ytd.yaml\nserver:\n  addr: \":9090\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadAppConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, "Acme Bakery", cfg.CompanyName)
	assert.Equal(t, StoreYAML, cfg.Store.Driver)
	assert.Equal(t, "ytd.yaml", cfg.Store.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestAppConfig_Validate(t *testing.T) {
	cfg := DefaultAppConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = DefaultAppConfig()
	cfg.Store.Path = ""
	assert.Error(t, cfg.Validate())

	cfg.Store.Driver = StoreMemory
	assert.NoError(t, cfg.Validate())
}

func TestAppConfig_LoadRulesProvider(t *testing.T) {
	cfg := DefaultAppConfig()
	provider, err := cfg.LoadRulesProvider()
	require.NoError(t, err)
	assert.Equal(t, []int{2025}, provider.Years())

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoYearRules), 0644))
	cfg.RulesFile = path
	provider, err = cfg.LoadRulesProvider()
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025}, provider.Years())
}
