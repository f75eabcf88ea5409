package picker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineSurface(t *testing.T) {
	p, err := New(KindInline, ConfidenceOptions(), "1.965")
	require.NoError(t, err)

	assert.True(t, p.IsOpen())
	assert.Equal(t, "95%", p.Selected().Short)

	require.NoError(t, p.Select("2.576"))
	assert.Equal(t, "99% (Z=2.576)", p.Selected().Label)
	assert.Error(t, p.Select("1.96"))
	assert.Equal(t, "2.576", p.Selected().Value)
}

func TestModalSurface(t *testing.T) {
	p, err := New(KindModal, MarginOptions(), "5")
	require.NoError(t, err)

	assert.False(t, p.IsOpen())
	assert.True(t, errors.Is(p.Select("3"), ErrClosed))
	assert.Equal(t, "5", p.Selected().Value)

	p.Open()
	require.NoError(t, p.Select("3"))
	assert.False(t, p.IsOpen(), "modal closes after a choice")
	assert.Equal(t, "3%", p.Selected().Short)

	p.Open()
	p.Close()
	assert.False(t, p.IsOpen())
}

func TestNewValidation(t *testing.T) {
	_, err := New(KindInline, nil, "")
	assert.Error(t, err)

	_, err = New(KindInline, MarginOptions(), "42")
	assert.Error(t, err)

	_, err = New("wheel", MarginOptions(), "5")
	assert.Error(t, err)
}

func TestOptionLists(t *testing.T) {
	margins := MarginOptions()
	require.Len(t, margins, 5)
	assert.Equal(t, Option{Label: "10%", Short: "10%", Value: "10"}, margins[4])

	confidence := ConfidenceOptions()
	require.Len(t, confidence, 3)
	assert.Equal(t, "1.645", confidence[0].Value)
	assert.Equal(t, "90%", confidence[0].Short)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindInline, k)

	k, err = ParseKind("MODAL")
	require.NoError(t, err)
	assert.Equal(t, KindModal, k)

	_, err = ParseKind("sheet")
	assert.Error(t, err)
}
