package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/automaton"
)

const mooreTable = `;y1;y2;y1;y2
;q0;q1;q2;q3
x1;q1;q0;q3;q2
x2;q2;q3;q0;q1
`

const mealyTable = `;a;b;c
x;b/0;a/0;c/1
y;c/1;c/1;a/0
`

func TestDecodeMoore(t *testing.T) {
	m, err := DecodeMoore(readString(t, mooreTable))
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())
	assert.Equal(t, "y2", m.Output(1))
	assert.Equal(t, []automaton.StateID{2}, m.TransitionsOn(0, "x2"))
	assert.Empty(t, m.Finals())
}

func TestMooreMinimizeRoundTrip(t *testing.T) {
	m, err := DecodeMoore(readString(t, mooreTable))
	require.NoError(t, err)
	min, err := automaton.MinimizeMoore(m)
	require.NoError(t, err)

	g, err := EncodeMoore(min)
	require.NoError(t, err)
	assert.Equal(t, Grid{
		{"", "y1", "y2"},
		{"", "S0", "S1"},
		{"x1", "S1", "S0"},
		{"x2", "S0", "S1"},
	}, g)

	back, err := DecodeMoore(g)
	require.NoError(t, err)
	again, err := EncodeMoore(back)
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestDecodeMealy(t *testing.T) {
	m, err := DecodeMealy(readString(t, mealyTable))
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())
	assert.Equal(t, "a", m.Name(m.Start()))
	assert.Equal(t, "1", m.TransitionOutput(0, "y"))
	assert.Equal(t, []automaton.StateID{2}, m.TransitionsOn(2, "x"))
}

func TestMealyMinimizeRoundTrip(t *testing.T) {
	m, err := DecodeMealy(readString(t, mealyTable))
	require.NoError(t, err)
	min, err := automaton.MinimizeMealy(m)
	require.NoError(t, err)

	g, err := EncodeMealy(min)
	require.NoError(t, err)
	assert.Equal(t, Grid{
		{"", "S0", "S1"},
		{"x", "S0/0", "S1/1"},
		{"y", "S1/1", "S0/0"},
	}, g)

	back, err := DecodeMealy(g)
	require.NoError(t, err)
	again, err := EncodeMealy(back)
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestMachineTablesTreatEAsSymbol(t *testing.T) {
	m, err := DecodeMoore(readString(t, ";0;1\n;p;q\ne;q;p\n"))
	require.NoError(t, err)
	assert.False(t, m.HasEpsilons())
	assert.Equal(t, []automaton.Symbol{"e"}, m.Alphabet())
}

func TestMachineDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		decode func(Grid) (*automaton.Automaton, error)
		src    string
	}{
		{"moore several targets", DecodeMoore, ";0;1\n;p;q\nx;p,q;p\n"},
		{"moore header only", DecodeMoore, ";0;1\n"},
		{"mealy output without target", DecodeMealy, ";p;q\nx;/1;p/0\n"},
		{"mealy several targets", DecodeMealy, ";p;q\nx;p,q/1;p/0\n"},
		{"mealy short row", DecodeMealy, ";p;q\nx;p/1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.decode(readString(t, tt.src))
			assert.ErrorIs(t, err, ErrTableFormat)
		})
	}

	_, err := DecodeMealy(readString(t, ";p;q\nx;r/1;p/0\n"))
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestEncodeMachineRejects(t *testing.T) {
	m := automaton.New()
	p, q := m.NewNamedState("p/1"), m.NewNamedState("q")
	m.AddTransition(p, "x", q)
	_, err := EncodeMealy(m)
	assert.ErrorIs(t, err, ErrTableFormat)

	n := automaton.New()
	s0 := n.NewState()
	n.SetOutput(s0, "a;b")
	_, err = EncodeMoore(n)
	assert.ErrorIs(t, err, ErrTableFormat)

	nfa, err := Decode(readString(t, nfaTable))
	require.NoError(t, err)
	_, err = EncodeMoore(nfa)
	assert.ErrorIs(t, err, automaton.ErrNondeterministic)
}
