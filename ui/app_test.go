package ui

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"statcalc/internal"
	"statcalc/internal/calculator"
	"statcalc/internal/engine"
	"statcalc/internal/picker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, surface picker.Kind) *App {
	t.Helper()
	opts := calculator.DefaultOptions()
	opts.Surface = surface
	app, err := NewApp(Config{
		Engine:      engine.NewDefault(),
		Calculators: opts,
		Logger:      internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError),
	})
	require.NoError(t, err)
	return app
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// press posts one key with the state carried by location and returns the
// redirect target.
func press(t *testing.T, h http.Handler, location string, action url.Values) string {
	t.Helper()
	u, err := url.Parse(location)
	require.NoError(t, err)
	form := u.Query()
	for k, v := range action {
		form[k] = v
	}
	rec := post(t, h, u.Path, form)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	return rec.Header().Get("Location")
}

func TestIndexListsCalculators(t *testing.T) {
	app := newTestApp(t, picker.KindInline)

	rec := get(t, app.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, def := range engine.NewDefault().Definitions() {
		assert.Contains(t, body, `href="/calc/`+def.Kind.String()+`"`)
	}
}

func TestKeypadFlowThroughRedirects(t *testing.T) {
	app := newTestApp(t, picker.KindInline)
	h := app.Handler()

	location := "/calc/mode"
	for _, key := range []string{"1", ",", "2", ",", "2", ",", "3", "="} {
		location = press(t, h, location, url.Values{"key": {key}})
	}

	u, err := url.Parse(location)
	require.NoError(t, err)
	assert.Equal(t, "1,2,2,3", u.Query().Get("data"))
	assert.Equal(t, "1", u.Query().Get(paramEvaluated))

	rec := get(t, h, location)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Moda: 2")

	// Further typing hides the stale result until "=".
	location = press(t, h, location, url.Values{"key": {"3"}})
	u, _ = url.Parse(location)
	assert.Empty(t, u.Query().Get(paramEvaluated))
	assert.NotContains(t, get(t, h, location).Body.String(), "Moda: 2")

	location = press(t, h, location, url.Values{"key": {"C"}})
	u, _ = url.Parse(location)
	assert.Empty(t, u.Query().Get("data"))
}

func TestInlinePickerChoice(t *testing.T) {
	app := newTestApp(t, picker.KindInline)
	h := app.Handler()

	location := "/calc/finite"
	for _, key := range []string{"1", "0", "0", "0"} {
		location = press(t, h, location, url.Values{"key": {key}})
	}
	location = press(t, h, location, url.Values{"field": {"margin"}, "value": {"3"}})
	location = press(t, h, location, url.Values{"key": {"="}})

	u, _ := url.Parse(location)
	assert.Equal(t, "3", u.Query().Get("margin"))
	assert.Empty(t, u.Query().Get(paramOpened))

	rec := get(t, h, location)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tamaño de la muestra: 518 personas")
}

func TestModalPickerMustBeOpened(t *testing.T) {
	app := newTestApp(t, picker.KindModal)
	h := app.Handler()

	rec := post(t, h, "/calc/infinite", url.Values{"field": {"confidence"}, "value": {"2.576"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	location := press(t, h, "/calc/infinite", url.Values{"field": {"confidence"}, "action": {"open"}})
	u, _ := url.Parse(location)
	assert.Equal(t, "confidence", u.Query().Get(paramOpened))
	assert.Contains(t, get(t, h, location).Body.String(), "99% (Z=2.576)")

	location = press(t, h, location, url.Values{"field": {"confidence"}, "value": {"2.576"}})
	u, _ = url.Parse(location)
	assert.Empty(t, u.Query().Get(paramOpened))
	assert.Equal(t, "2.576", u.Query().Get("confidence"))
}

func TestCalculatorPageErrors(t *testing.T) {
	app := newTestApp(t, picker.KindInline)
	h := app.Handler()

	assert.Equal(t, http.StatusNotFound, get(t, h, "/calc/variance").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/calc/mean?data=1x2").Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, "/calc/mean", url.Values{"key": {"%"}}).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, "/calc/mean", url.Values{}).Code)
}

func TestAppFormulas(t *testing.T) {
	app := newTestApp(t, picker.KindInline)

	rec := get(t, app.Handler(), "/formulas")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tamaño Muestra Infinita")
}
