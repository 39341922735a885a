package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/internal/modcache"
	"github.com/pkl-community/pklcore/internal/object"
	"github.com/pkl-community/pklcore/pkg/pklapi"
)

func writeModule(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "module.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func loadModuleForTest(t *testing.T, path string) (*object.Typed, error) {
	t.Helper()
	return loadModule(modcache.New(runtimeVersion), pklapi.DefaultHolder(), path)
}

func TestEvalRendersTextByDefault(t *testing.T) {
	path := writeModule(t, `{"name": "demo", "count": 3, "enabled": true}`)
	evalFormat = "text"
	err := runEval(path)
	assert.NoError(t, err)
}

func TestEvalRejectsUnknownFormat(t *testing.T) {
	path := writeModule(t, `{"x": 1}`)
	evalFormat = "xml"
	err := runEval(path)
	assert.Error(t, err)
}

func TestEvalFailsOnMissingFile(t *testing.T) {
	evalFormat = "text"
	err := runEval(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDiffReportsNoDifferencesForIdenticalModules(t *testing.T) {
	a := writeModule(t, `{"name": "demo"}`)
	b := writeModule(t, `{"name": "demo"}`)
	err := runDiff(a, b)
	assert.NoError(t, err)
}

func TestDiffReportsDifferencesForChangedModules(t *testing.T) {
	a := writeModule(t, `{"name": "demo"}`)
	b := writeModule(t, `{"name": "changed"}`)
	err := runDiff(a, b)
	assert.NoError(t, err)
}

func TestRenderJSONSucceedsForScalarProperty(t *testing.T) {
	path := writeModule(t, `{"greeting": "hello"}`)
	module, err := loadModuleForTest(t, path)
	require.NoError(t, err)
	out, err := render(module.Export(), "json")
	require.NoError(t, err)
	assert.Contains(t, out, "greeting")
	assert.Contains(t, out, "hello")
}

func TestToValueRejectsUnsupportedType(t *testing.T) {
	_, err := toValue(complex(1, 2))
	assert.Error(t, err)
}

func TestRenderTextProducesBracesForObject(t *testing.T) {
	path := writeModule(t, `{"a": 1, "b": "two"}`)
	module, err := loadModuleForTest(t, path)
	require.NoError(t, err)
	out := renderText(module.Export())
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, "a = 1")
}
