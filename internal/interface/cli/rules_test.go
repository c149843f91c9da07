package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesShowDefaults(t *testing.T) {
	out, err := execute(t, "rules", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "reference_keywords:")
	assert.Contains(t, out, "- AMM")
	assert.Contains(t, out, "linking_keywords:")
	assert.Contains(t, out, "auto_valid_seq_prefixes:")
}

func TestRulesShowCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "reference_keywords:\n  - AMM\n  - XYZ\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "rules", "show", "--rules", path)
	require.NoError(t, err)
	assert.Contains(t, out, "- XYZ")
	// Omitted sections fall back to defaults
	assert.Contains(t, out, "linking_keywords:")
}

func TestRulesInitAndReuse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	out, err := execute(t, "rules", "init", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	// The generated file round-trips through rules show
	out, err = execute(t, "rules", "show", "--rules", path)
	require.NoError(t, err)
	assert.Contains(t, out, "- AMM")

	// A second init without --force refuses to overwrite
	_, err = execute(t, "rules", "init", "--out", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "rules", "init", "--out", path, "--force")
	assert.NoError(t, err)
}

func TestRulesShowMissingFile(t *testing.T) {
	_, err := execute(t, "rules", "show", "--rules", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
