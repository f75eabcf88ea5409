package calculator

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"statcalc/domain/core"
	domainStats "statcalc/domain/stats"
	"statcalc/internal/engine"
	"statcalc/internal/picker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalc(t *testing.T, kind domainStats.Kind) *Calculator {
	t.Helper()
	c, err := New(engine.NewDefault(), kind, DefaultOptions())
	require.NoError(t, err)
	return c
}

func TestModeCalculatorFlow(t *testing.T) {
	c := newCalc(t, domainStats.KindMode)

	s := c.Snapshot()
	assert.Equal(t, "Ingrese valores (e.g., 1, 2, 2, 3)", s.Display)
	assert.Equal(t, "Moda = Valor(es) con mayor frecuencia", s.FormulaTxt)
	assert.Nil(t, s.Result)

	require.NoError(t, c.Type("1,2,2,3"))
	s = c.Snapshot()
	assert.Equal(t, "1,2,2,3", s.Display)
	assert.Equal(t, "Moda = 2", s.FormulaTxt, "formula updates before evaluation")
	assert.Nil(t, s.Result)

	require.NoError(t, c.Press(engine.KeyEquals))
	s = c.Snapshot()
	require.NotNil(t, s.Result)
	assert.Equal(t, "2", s.Result.Text)
	assert.Equal(t, "Moda: 2", s.ResultText)

	require.NoError(t, c.Press(engine.KeyClear))
	s = c.Snapshot()
	assert.Nil(t, s.Result)
	assert.Equal(t, "", s.Input.Data)
}

func TestClearAndReenterReproducesResult(t *testing.T) {
	c := newCalc(t, domainStats.KindStandardDeviation)

	require.NoError(t, c.Type("1,2,3,4="))
	first := c.Snapshot().Result
	require.NotNil(t, first)

	c.Clear()
	require.NoError(t, c.Type("1,2,3,4"))
	second := c.Evaluate()

	assert.Equal(t, *first, second)
	assert.Equal(t, "Desviación estándar: 1.29", c.Snapshot().ResultText)
}

func TestUnavailableResultHasNoText(t *testing.T) {
	c := newCalc(t, domainStats.KindStandardDeviation)
	require.NoError(t, c.Type("5="))

	s := c.Snapshot()
	require.NotNil(t, s.Result)
	assert.False(t, s.Result.Available())
	assert.Empty(t, s.ResultText)
}

func TestRejectsKeysOffTheKeypad(t *testing.T) {
	c := newCalc(t, domainStats.KindMean)

	err := c.Press("%")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidKey))

	err = c.Type("12a3")
	require.Error(t, err)
	assert.Equal(t, "12", c.Snapshot().Input.Data, "typing stops at the rejected key")
}

func TestFiniteCalculator(t *testing.T) {
	c := newCalc(t, domainStats.KindFiniteSampleSize)

	s := c.Snapshot()
	assert.Equal(t, "5", s.Input.Margin)
	assert.Equal(t, "1.965", s.Input.Confidence)
	require.Len(t, s.Pickers, 2)
	assert.Equal(t, engine.FieldMargin, s.Pickers[0].Field)
	assert.Equal(t, "95%", s.Pickers[1].Selected.Short)

	require.NoError(t, c.Type("1000="))
	assert.Equal(t, "Tamaño de la muestra: 279 personas", c.Snapshot().ResultText)

	require.NoError(t, c.Choose(engine.FieldMargin, "3"))
	r := c.Evaluate()
	want := engine.FiniteSampleSize(1000, 3, 1.965)
	assert.Equal(t, want.Value, r.Value)

	assert.Error(t, c.Press(","), "population keypad has no comma")
}

func TestInfiniteCalculator(t *testing.T) {
	c := newCalc(t, domainStats.KindInfiniteSampleSize)

	require.NoError(t, c.Type("5%"))
	assert.Equal(t, "n = (1.965² × 0.5 × (1 - 0.5)) / 5%²", c.Snapshot().FormulaTxt)

	r := c.Evaluate()
	require.True(t, r.Available())
	assert.Equal(t, 387.0, r.Value)

	require.NoError(t, c.Choose(engine.FieldConfidence, "2.576"))
	assert.Equal(t, "2.576", c.Snapshot().Input.Confidence)

	err := c.Choose(engine.FieldMargin, "3")
	assert.True(t, errors.Is(err, core.ErrInvalidParam), "margin is typed, not picked")
}

func TestModalPickerMustBeOpened(t *testing.T) {
	opts := DefaultOptions()
	opts.Surface = picker.KindModal
	c, err := New(engine.NewDefault(), domainStats.KindFiniteSampleSize, opts)
	require.NoError(t, err)

	err = c.Choose(engine.FieldConfidence, "1.645")
	assert.True(t, errors.Is(err, core.ErrInvalidParam))

	require.NoError(t, c.OpenPicker(engine.FieldConfidence))
	assert.True(t, c.Snapshot().Pickers[1].Open)
	require.NoError(t, c.Choose(engine.FieldConfidence, "1.645"))
	assert.False(t, c.Snapshot().Pickers[1].Open)
	assert.Equal(t, "1.645", c.Snapshot().Input.Confidence)

	assert.Error(t, c.OpenPicker(engine.FieldData))
}

func TestNewRejectsUnknownKindAndBadDefaults(t *testing.T) {
	_, err := New(engine.NewDefault(), "variance", DefaultOptions())
	assert.True(t, errors.Is(err, core.ErrUnknownStatistic))

	opts := DefaultOptions()
	opts.DefaultMargin = "42"
	_, err = New(engine.NewDefault(), domainStats.KindFiniteSampleSize, opts)
	assert.Error(t, err)
}

func TestConcurrentPresses(t *testing.T) {
	c := newCalc(t, domainStats.KindMean)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = c.Press("1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, strings.Repeat("1", 100), c.Snapshot().Input.Data)
}

func TestResultLine(t *testing.T) {
	def, err := engine.NewDefault().Definition(domainStats.KindMedian)
	require.NoError(t, err)
	assert.Equal(t, "Mediana: 2.50", ResultLine(def, domainStats.Number(domainStats.KindMedian, 2.5, 4), 2))
	assert.Equal(t, "", ResultLine(def, domainStats.Unavailable(domainStats.KindMedian), 2))
}
