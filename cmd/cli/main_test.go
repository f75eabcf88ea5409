package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "MODE_ORDER", "DECIMAL_PLACES", "DEFAULT_MARGIN_PERCENT", "DEFAULT_CONFIDENCE", "PICKER_SURFACE"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestComputeFromArgs(t *testing.T) {
	out, err := run(t, "", "compute", "mean", "1,", "2,", "3,", "4")
	require.NoError(t, err)
	assert.Equal(t, "Media: 2.50\nx̄ = 10 / 4\n", out)
}

func TestComputeModeOrder(t *testing.T) {
	out, err := run(t, "", "compute", "moda", "3", "1", "3", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Moda: 1, 3\n"), out)

	out, err = run(t, "", "compute", "moda", "--mode-order", "first-seen", "3", "1", "3", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Moda: 3, 1\n"), out)
}

func TestComputeFromStdinAndFile(t *testing.T) {
	out, err := run(t, "1 3 2\n", "compute", "median")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Mediana: 2.00\n"), out)

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,9\n2,9\n3,9\n4,9\n"), 0o644))
	out, err = run(t, "", "compute", "stddev", "--file", path, "--column", "x")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Desviación estándar: 1.29\n"), out)
}

func TestComputeUnavailableAndErrors(t *testing.T) {
	out, err := run(t, "", "compute", "stddev", "5")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Desviación estándar: -\n"), out)

	_, err = run(t, "", "compute", "variance", "1")
	assert.Error(t, err)

	_, err = run(t, "", "compute", "finite", "1")
	assert.Error(t, err)
}

func TestComputeJSON(t *testing.T) {
	out, err := run(t, "", "compute", "mean", "--json", "2", "4")
	require.NoError(t, err)

	var got computation
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3.00", got.Formatted)
	assert.Equal(t, 3.0, got.Result.Value)
	assert.Equal(t, 2, got.Result.N)
}

func TestSample(t *testing.T) {
	out, err := run(t, "", "sample", "finite", "--population", "1000")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Tamaño de la muestra: 279 personas\n"), out)

	out, err = run(t, "", "sample", "infinite")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Tamaño de la muestra: 387 personas\n"), out)

	_, err = run(t, "", "sample", "finite")
	assert.Error(t, err)

	_, err = run(t, "", "sample", "infinite", "--confidence", "100")
	assert.Error(t, err)

	_, err = run(t, "", "sample", "mean")
	assert.Error(t, err)
}

func TestSummaryConcurrentFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte("v\n1\n2\n2\n3\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(`{"v": [10, 20]}`), 0o644))

	out, err := run(t, "", "summary", "--file", a, "--file", b, "--json-path", "v", "5", "5")
	require.NoError(t, err)

	blocks := strings.Split(out, "\n\n")
	require.Len(t, blocks, 3)
	assert.Contains(t, blocks[0], "== datos (n=2) ==")
	assert.Contains(t, blocks[0], "Moda: 5")
	assert.Contains(t, blocks[1], "== a.csv (n=4) ==")
	assert.Contains(t, blocks[1], "Desviación estándar: 0.82")
	assert.Contains(t, blocks[2], "== b.json (n=2) ==")
	assert.Contains(t, blocks[2], "Media: 15.00")
	assert.Contains(t, blocks[2], "Moda: No hay moda")

	_, err = run(t, "", "summary", "--file", filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestFormulas(t *testing.T) {
	out, err := run(t, "", "formulas")
	require.NoError(t, err)
	assert.Contains(t, out, "## Tamaño Muestra Finita")
}

func TestKeypad(t *testing.T) {
	out, err := run(t, "1000\nmargin=3\n=\nC\n", "keypad", "finite")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Calculadora de Tamaño de Muestra Finita\n"), out)
	assert.Contains(t, out, "[1000] n = (1000 × 1.965² × 0.25)")
	assert.Contains(t, out, "margin: 3%")
	assert.Contains(t, out, "Tamaño de la muestra: 518 personas")
	assert.True(t, strings.HasSuffix(out, "[0] n = (N × 1.965² × 0.25) / (3%² × (N - 1) + 1.965² × 0.25)\n  margin: 3%\n  confidence: 95% (Z=1.965)\n"), out)
}

func TestKeypadReportsBadKeys(t *testing.T) {
	out, err := run(t, "1,2\n%\n=\n", "keypad", "mode")
	require.NoError(t, err)
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "Moda: No hay moda")
}
