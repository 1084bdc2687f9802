package fuzzy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVariable(t *testing.T) *Variable {
	t.Helper()
	v, err := NewVariable("y", Universe{Min: -200, Max: 200, Step: 1},
		Set{"above", Triangle{-200, -100, 0}},
		Set{"center", Triangle{-100, 0, 100}},
		Set{"below", Triangle{0, 100, 200}},
	)
	require.NoError(t, err)
	return v
}

func TestNewVariable_DuplicateTerm(t *testing.T) {
	_, err := NewVariable("x", Universe{Min: 0, Max: 10, Step: 1},
		Set{"low", Triangle{0, 0, 5}},
		Set{"low", Triangle{5, 10, 10}},
	)
	assert.True(t, errors.Is(err, ErrDuplicateTerm))
}

func TestNewVariable_InvalidUniverse(t *testing.T) {
	for _, u := range []Universe{
		{Min: 10, Max: 0, Step: 1},
		{Min: 0, Max: 10, Step: 0},
		{Min: 0, Max: 10, Step: 20},
	} {
		_, err := NewVariable("x", u)
		assert.True(t, errors.Is(err, ErrInvalidUniverse), "%+v", u)
	}
}

func TestVariable_TermsKeepDeclarationOrder(t *testing.T) {
	v := newTestVariable(t)
	assert.Equal(t, []string{"above", "center", "below"}, v.Terms())

	terms := v.Terms()
	terms[0] = "mutated"
	assert.Equal(t, "above", v.Terms()[0])
}

func TestVariable_FuzzifyClampsToUniverse(t *testing.T) {
	v := newTestVariable(t)

	inside := v.Fuzzify(-150)
	assert.InDelta(t, 0.5, inside["above"], 1e-9)
	assert.Equal(t, 0.0, inside["center"])

	assert.Equal(t, v.Fuzzify(-200), v.Fuzzify(-5000))
	assert.Equal(t, v.Fuzzify(200), v.Fuzzify(1e9))
}

func TestUniverse_Points(t *testing.T) {
	pts := Universe{Min: -10, Max: 10, Step: 1}.Points()
	require.Len(t, pts, 21)
	assert.Equal(t, -10.0, pts[0])
	assert.Equal(t, 0.0, pts[10])
	assert.Equal(t, 10.0, pts[20])
}

func TestVariable_Sample(t *testing.T) {
	v, err := NewVariable("velocity", Universe{Min: -10, Max: 10, Step: 1},
		Set{"stop", Triangle{-3, 0, 3}},
	)
	require.NoError(t, err)

	s := v.Sample("stop")
	require.Len(t, s, 21)
	assert.Equal(t, 1.0, s[10])
	assert.InDelta(t, 2.0/3, s[9], 1e-9)
	assert.Equal(t, 0.0, s[7])
	assert.Equal(t, make([]float64, 21), v.Sample("missing"))
}
