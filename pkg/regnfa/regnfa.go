// Package regnfa matches byte strings against regular expressions using a
// Thompson NFA. Patterns support concatenation, alternation, grouping, the
// '.' wildcard, the '*', '+' and '?' operators, bounded repetition {m,n}
// and bracketed character classes. Matching never backtracks and always
// covers the whole input.
package regnfa

import (
	"fmt"
	"io"
	"sync"

	"github.com/KromDaniel/regnfa/internal/compiler"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/KromDaniel/regnfa/internal/syntax"
)

// Errors returned by Compile, wrapped so that errors.Is works on them.
var (
	ErrUnbalancedGrouping      = syntax.ErrUnbalancedGrouping
	ErrMalformedQuantifier     = syntax.ErrMalformedQuantifier
	ErrMalformedCharacterClass = syntax.ErrMalformedCharacterClass
	ErrUnsupportedSyntax       = syntax.ErrUnsupportedSyntax
	ErrMissingOperand          = syntax.ErrMissingOperand
	ErrTooManyStates           = nfa.ErrTooManyStates
)

// Error is the detailed form of a pattern error; use errors.As to get it.
type Error = syntax.Error

// Options configures compilation.
type Options struct {
	// Pattern is the regular expression to compile. The empty pattern
	// matches only the empty string.
	Pattern string

	// Verbose logs each pipeline stage to stderr
	Verbose bool

	// UseDFA matches through a lazily built DFA cache instead of the
	// state set simulation. Results are identical.
	UseDFA bool

	// MaxStates caps the automaton size. Zero means nfa.DefaultMaxStates.
	MaxStates int

	// DFACacheSize caps the number of cached DFA states per matcher. Zero
	// means nfa.DefaultDFACacheSize. Only used with UseDFA.
	DFACacheSize int
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.MaxStates < 0 {
		return fmt.Errorf("max states cannot be negative")
	}
	if o.DFACacheSize < 0 {
		return fmt.Errorf("dfa cache size cannot be negative")
	}
	if o.DFACacheSize > 0 && !o.UseDFA {
		return fmt.Errorf("dfa cache size requires UseDFA")
	}
	return nil
}

// Regexp is a compiled pattern. It is safe for concurrent use.
type Regexp struct {
	pattern string
	postfix []syntax.Token
	nfa     *nfa.NFA
	useDFA  bool
	dfas    sync.Pool // *nfa.DFA
}

// Compile parses pattern and builds its automaton.
func Compile(pattern string) (*Regexp, error) {
	return CompileWithOptions(Options{Pattern: pattern})
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(`regnfa: Compile(` + quote(pattern) + `): ` + err.Error())
	}
	return re
}

// CompileWithOptions compiles opts.Pattern according to opts.
func CompileWithOptions(opts Options) (*Regexp, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := compiler.NewLogger(opts.Verbose)

	postfix, err := syntax.Parse(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	if logger.Enabled() {
		infix, _ := syntax.Expand(opts.Pattern)
		logger.Section("Parse")
		logger.Log("Pattern: %q", opts.Pattern)
		logger.Log("Expanded: %s", syntax.String(infix))
		logger.Log("Postfix: %s", syntax.String(postfix))
	}

	n, err := nfa.BuildWithLimit(postfix, opts.MaxStates)
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton: %w", err)
	}
	logger.Section("Automaton")
	logger.Log("States: %d (start %d, accept %d)", n.Len(), n.Start(), n.Accept())
	logger.Log("Consuming states: %d", len(n.ConsumingStates()))
	if opts.UseDFA {
		logger.Log("Matcher: lazy DFA (cache %d)", opts.DFACacheSize)
	} else {
		logger.Log("Matcher: state set simulation")
	}

	re := &Regexp{
		pattern: opts.Pattern,
		postfix: postfix,
		nfa:     n,
		useDFA:  opts.UseDFA,
	}
	cacheSize := opts.DFACacheSize
	re.dfas.New = func() interface{} {
		return n.NewDFA(cacheSize)
	}
	return re, nil
}

// Match reports whether text, in its entirety, matches pattern.
func Match(pattern, text string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(text), nil
}

// MatchString reports whether the whole of s matches.
func (re *Regexp) MatchString(s string) bool {
	if re.useDFA {
		d := re.dfas.Get().(*nfa.DFA)
		defer re.dfas.Put(d)
		return d.MatchString(s)
	}
	return re.nfa.MatchString(s)
}

// MatchBytes reports whether the whole of b matches.
func (re *Regexp) MatchBytes(b []byte) bool {
	if re.useDFA {
		d := re.dfas.Get().(*nfa.DFA)
		defer re.dfas.Put(d)
		return d.MatchBytes(b)
	}
	return re.nfa.MatchBytes(b)
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.pattern
}

// NumStates returns the number of states in the automaton.
func (re *Regexp) NumStates() int {
	return re.nfa.Len()
}

// Postfix returns the postfix form of the pattern with '~' as the explicit
// concatenation operator.
func (re *Regexp) Postfix() string {
	return syntax.String(re.postfix)
}

// Expanded returns the infix form after classes and bounded repetition
// have been rewritten and concatenation made explicit.
func (re *Regexp) Expanded() string {
	infix, err := syntax.Expand(re.pattern)
	if err != nil {
		// Compile already expanded this pattern successfully.
		panic(err)
	}
	return syntax.String(infix)
}

// WriteDot writes the automaton as a Graphviz digraph titled with the
// pattern.
func (re *Regexp) WriteDot(w io.Writer) error {
	return re.nfa.WriteDot(w, "regnfa", re.pattern)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
