package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityIsIdentity(t *testing.T) {
	require.True(t, Identity().IsIdentity())
	require.False(t, Translate(1, 0).IsIdentity())
}

func TestComposeAppliesMFirstThenOther(t *testing.T) {
	m := Translate(10, 0)
	other := Scale(2, 2)
	composed := m.Compose(other)

	require.Equal(t, other.Apply(m.Apply(Pt(1, 1))), composed.Apply(Pt(1, 1)))
}

func TestInvertUndoesATranslation(t *testing.T) {
	m := Translate(5, -3)
	inv := m.Invert()
	require.InDelta(t, 0, m.Apply(inv.Apply(Pt(7, 7))).Distance(Pt(7, 7)), 1e-9)
}

func TestInvertOfSingularMatrixIsIdentity(t *testing.T) {
	singular := Matrix{A: 1, B: 2, C: 0, D: 2, E: 4, F: 0}
	require.True(t, singular.Invert().IsIdentity())
}
