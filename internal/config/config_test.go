package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto-assigner/internal/change"
	"auto-assigner/internal/resolve"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "Assets/ScriptableObjects", c.AssetRoot)
	assert.Equal(t, "deep", c.Fingerprint)
	assert.Equal(t, "index", c.AssetOrder)
	assert.True(t, *c.PauseOnViolation)
	assert.True(t, *c.LogAssignments)
	assert.Equal(t, "[AutoAssigner]", c.LogPrefix)
	require.NoError(t, c.Validate())
}

func TestParse(t *testing.T) {
	yaml := `
asset_root: Assets/Data
fingerprint: shallow
asset_order: path
pause_on_violation: false
log_prefix: "[AA]"
`

	c, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "Assets/Data", c.AssetRoot)
	assert.False(t, *c.PauseOnViolation)
	assert.True(t, *c.LogAssignments)
	assert.Equal(t, "[AA]", c.LogPrefix)

	cfg, err := c.Coordinator()
	require.NoError(t, err)
	assert.Equal(t, change.ModeShallow, cfg.Fingerprint)
	assert.False(t, cfg.PauseOnViolation)
	assert.Equal(t, resolve.OrderPath, cfg.Resolve.AssetOrder)
	assert.Equal(t, "Assets/Data", cfg.Resolve.AssetRoot)
	assert.True(t, cfg.Resolve.LogAssignments)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("asset_root: [unclosed"))
	assert.Error(t, err)

	c, err := Parse([]byte("fingerprint: exact"))
	require.NoError(t, err)
	assert.Error(t, c.Validate())

	_, err = c.Coordinator()
	assert.Error(t, err)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoassign.yaml")
	require.NoError(t, os.WriteFile(path, []byte("asset_root: Assets/Data\nfingerprint: deep\n"), 0o644))

	t.Setenv(EnvAssetRoot, "Assets/Override")
	t.Setenv(EnvFingerprint, "shallow")
	t.Setenv(EnvAssetOrder, "")

	c, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Assets/Override", c.AssetRoot)
	assert.Equal(t, "shallow", c.Fingerprint)
	assert.Equal(t, "index", c.AssetOrder)
}

func TestLoadFileDefaultsAndErrors(t *testing.T) {
	t.Setenv(EnvAssetOrder, "path")

	c, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "path", c.AssetOrder)

	t.Setenv(EnvAssetOrder, "random")
	_, err = LoadFile("")
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
