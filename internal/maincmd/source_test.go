package maincmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slothlang/sloth/lang/diag"
	"github.com/slothlang/sloth/lang/token"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSourcesPadsEachFileToAFixedBlock(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.sloth", "var x: Integer = 1;\n")
	b := writeTemp(t, dir, "b.sloth", "var y: Integer = 2;\n")

	src, ranges, err := loadSources([]string{a, b})
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	require.Equal(t, 1, ranges[0].startLine)
	require.Equal(t, linesPerFileBlock+1, ranges[1].startLine)
	require.Len(t, src, len(src)) // sanity: no panic building the string
}

func TestLocateMapsGlobalLineBackToItsFile(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.sloth", "var x: Integer = 1;\n")
	b := writeTemp(t, dir, "b.sloth", "var y: Integer = 2;\n")

	_, ranges, err := loadSources([]string{a, b})
	require.NoError(t, err)

	path, line := locate(ranges, 1)
	require.Equal(t, a, path)
	require.Equal(t, 1, line)

	path, line = locate(ranges, linesPerFileBlock+1)
	require.Equal(t, b, path)
	require.Equal(t, 1, line)
}

func TestDiagnosticsForMapsErrorListEntries(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.sloth", "var x: Integer = 1;\n")

	_, ranges, err := loadSources([]string{a})
	require.NoError(t, err)

	var errs diag.ErrorList
	errs.Add(token.Location{Row: 1, Col: 1}, "boom")

	ds := diagnosticsFor(errs.Err(), ranges)
	require.Len(t, ds, 1)
	require.Equal(t, a, ds[0].path)
	require.Equal(t, 1, ds[0].line)
	require.Equal(t, "boom", ds[0].msg)
}

func TestDiagnosticsForFallsBackOnPlainErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.sloth", "var x: Integer = 1;\n")

	_, ranges, err := loadSources([]string{a})
	require.NoError(t, err)

	ds := diagnosticsFor(os.ErrNotExist, ranges)
	require.Len(t, ds, 1)
	require.Equal(t, a, ds[0].path)
	require.Equal(t, 0, ds[0].line)
}
