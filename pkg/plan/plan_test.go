package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writePlan(t, `
output_dir: ./out
exports:
  - name: january
    file: exports/takeout-jan.zip
  - file: exports/statement.csv
`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./out", p.OutputDir)
	require.Len(t, p.Exports, 2)
	assert.Equal(t, "january", p.Exports[0].Name)
	assert.Equal(t, "exports/statement.csv", p.Exports[1].File)
	assert.Empty(t, p.Exports[1].Name)
}

func TestLoadNoExports(t *testing.T) {
	path := writePlan(t, "output_dir: ./out\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "no exports")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := writePlan(t, "exports: [not: {valid")
	_, err := Load(path)
	assert.Error(t, err)
}
