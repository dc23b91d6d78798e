// Package pipeline wires the parsers, the determinizer and the table codec
// into complete conversions.
package pipeline

import (
	"bytes"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"automata/internal/automaton"
	"automata/internal/grammar"
	"automata/internal/regex"
	"automata/internal/table"
)

// Format selects the rendering of a conversion result.
type Format int

const (
	FormatTable Format = iota
	FormatDOT
)

// ParseFormat maps "table" and "dot" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "table", "":
		return FormatTable, nil
	case "dot":
		return FormatDOT, nil
	}
	return 0, fmt.Errorf("unknown output format %q", s)
}

type (
	// Converter runs conversions with a fixed set of options. It holds no
	// per-conversion state and is safe for concurrent use.
	Converter struct {
		logger   logrus.FieldLogger
		minimize bool
		keepNFA  bool
		sentinel string
		format   Format
	}

	// Option defines the Converter functional option type.
	Option func(*Converter)

	// Result holds every automaton produced by one conversion. Machine
	// conversions fill Machine and Minimal only.
	Result struct {
		NFA     *automaton.Automaton
		DFA     *automaton.Automaton
		Subsets []automaton.StateSet
		Machine *automaton.Automaton
		Minimal *automaton.Automaton

		kind   Kind
		output *automaton.Automaton
	}
)

// New creates a Converter. By default it determinizes without minimizing and
// writes tables with "-" for absent transitions.
func New(opts ...Option) *Converter {
	c := &Converter{
		logger:   logrus.New(),
		sentinel: table.NoTransition,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLogger configures the logger option.
func WithLogger(l logrus.FieldLogger) Option { return func(c *Converter) { c.logger = l } }

// WithMinimize configures the minimize option.
func WithMinimize(min bool) Option { return func(c *Converter) { c.minimize = min } }

// WithKeepNFA makes Output return the NFA instead of the DFA.
func WithKeepNFA(keep bool) Option { return func(c *Converter) { c.keepNFA = keep } }

// WithSentinel configures the absent-transition cell written to tables.
func WithSentinel(s string) Option { return func(c *Converter) { c.sentinel = s } }

// WithFormat configures the output format.
func WithFormat(f Format) Option { return func(c *Converter) { c.format = f } }

// Logger obtains the logger.
func (c *Converter) Logger() logrus.FieldLogger { return c.logger }

// Output is the automaton the converter was configured to emit.
func (r *Result) Output() *automaton.Automaton { return r.output }

// FromRegex converts a pattern.
func (c *Converter) FromRegex(pattern string) (*Result, error) {
	root, err := regex.Parse(pattern)
	if err != nil {
		return nil, err
	}
	c.logger.WithField("alphabet", root.Alphabet()).Debugf("syntax tree of %q: %s", pattern, root)
	return c.fromNFA(regex.Build(root))
}

// FromTable converts a decoded table.
func (c *Converter) FromTable(g table.Grid) (*Result, error) {
	nfa, err := table.Decode(g)
	if err != nil {
		return nil, err
	}
	return c.fromNFA(nfa)
}

// FromGrammar converts a regular grammar source.
func (c *Converter) FromGrammar(src string) (*Result, error) {
	g, err := grammar.Parse(src)
	if err != nil {
		return nil, err
	}
	if debugEnabled(c.logger) {
		c.logger.Debugf("%s grammar: %s", g.Kind, spew.Sdump(g.Rules))
	}
	nfa, err := g.NFA()
	if err != nil {
		return nil, err
	}
	return c.fromNFA(nfa)
}

// FromMoore minimizes a Moore machine table.
func (c *Converter) FromMoore(g table.Grid) (*Result, error) {
	m, err := table.DecodeMoore(g)
	if err != nil {
		return nil, err
	}
	return c.fromMachine(m, KindMoore, automaton.MinimizeMoore)
}

// FromMealy minimizes a Mealy machine table.
func (c *Converter) FromMealy(g table.Grid) (*Result, error) {
	m, err := table.DecodeMealy(g)
	if err != nil {
		return nil, err
	}
	return c.fromMachine(m, KindMealy, automaton.MinimizeMealy)
}

type minimizer func(*automaton.Automaton, ...automaton.Option) (*automaton.Automaton, error)

// fromMachine always minimizes: machine conversions exist for that.
func (c *Converter) fromMachine(m *automaton.Automaton, kind Kind, minimize minimizer) (*Result, error) {
	min, err := minimize(m, automaton.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{"machine": kind, "states": m.Len(), "min_states": min.Len()}).Debug("conversion done")
	return &Result{Machine: m, Minimal: min, kind: kind, output: min}, nil
}

func (c *Converter) fromNFA(nfa *automaton.Automaton) (*Result, error) {
	res := &Result{NFA: nfa}
	res.DFA, res.Subsets = automaton.Determinize(nfa, automaton.WithLogger(c.logger))
	res.output = res.DFA
	log := c.logger.WithFields(logrus.Fields{"nfa_states": nfa.Len(), "dfa_states": res.DFA.Len()})

	if c.minimize {
		min, err := automaton.Minimize(res.DFA, automaton.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		res.Minimal = min
		res.output = min
		log = log.WithField("min_states", min.Len())
	}
	if c.keepNFA {
		res.output = nfa
	}
	log.Debug("conversion done")
	return res, nil
}

// Render produces the configured output of res in memory.
func (c *Converter) Render(res *Result) ([]byte, error) {
	out := res.Output()
	if c.format == FormatDOT {
		var b bytes.Buffer
		if err := automaton.WriteDOT(&b, out); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	}
	encode := table.Encode
	switch res.kind {
	case KindMoore:
		encode = table.EncodeMoore
	case KindMealy:
		encode = table.EncodeMealy
	}
	g, err := encode(out, table.WithSentinel(c.sentinel))
	if err != nil {
		return nil, err
	}
	return g.Bytes(), nil
}

func debugEnabled(l logrus.FieldLogger) bool {
	switch l := l.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return true
}
