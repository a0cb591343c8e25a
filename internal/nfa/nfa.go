// Package nfa builds Thompson automata from postfix token streams and runs
// them with parallel epsilon-closure simulation.
//
// States live in an arena owned by the NFA and refer to each other by
// StateID, so the loops introduced by '*' and '+' need no special
// ownership handling. Once Build returns, an NFA is never mutated and may be
// shared by any number of goroutines.
package nfa

import (
	"errors"
	"fmt"
	"sync"
)

// StateID addresses a state in an NFA's arena.
type StateID int32

// NoState marks an absent edge.
const NoState StateID = -1

// ErrTooManyStates is returned when construction would exceed the state cap.
var ErrTooManyStates = errors.New("too many NFA states")

// LabelKind says what a state consumes when it is left.
type LabelKind uint8

const (
	// Epsilon states consume nothing and may have two outgoing edges.
	Epsilon LabelKind = iota
	// Literal states consume exactly Label.Char.
	Literal
	// Wildcard states consume any single byte.
	Wildcard
)

func (k LabelKind) String() string {
	switch k {
	case Epsilon:
		return "Epsilon"
	case Literal:
		return "Literal"
	case Wildcard:
		return "Wildcard"
	}
	return fmt.Sprintf("LabelKind(%d)", uint8(k))
}

// Label is the tagged transition label of a state.
type Label struct {
	Kind LabelKind
	Char byte
}

// Consumes reports whether leaving the state reads an input byte.
func (l Label) Consumes() bool {
	switch l.Kind {
	case Literal, Wildcard:
		return true
	case Epsilon:
		return false
	}
	panic(fmt.Sprintf("nfa: unknown label kind %v", l.Kind))
}

// Matches reports whether a consuming label accepts c. Epsilon labels never
// match a byte.
func (l Label) Matches(c byte) bool {
	switch l.Kind {
	case Literal:
		return l.Char == c
	case Wildcard:
		return true
	case Epsilon:
		return false
	}
	panic(fmt.Sprintf("nfa: unknown label kind %v", l.Kind))
}

func (l Label) String() string {
	switch l.Kind {
	case Literal:
		return fmt.Sprintf("%q", l.Char)
	case Wildcard:
		return "any"
	}
	return "ε"
}

// State is a node of the automaton. Consuming states use only Edge1.
type State struct {
	Label Label
	Edge1 StateID
	Edge2 StateID
}

// NFA is a compiled automaton with one start and one accept state.
type NFA struct {
	states []State
	start  StateID
	accept StateID
	pool   sync.Pool // *machine
}

// Start returns the start state.
func (n *NFA) Start() StateID { return n.start }

// Accept returns the accept state.
func (n *NFA) Accept() StateID { return n.accept }

// Len returns the number of states in the arena.
func (n *NFA) Len() int { return len(n.states) }

// State returns a copy of the state with the given id.
func (n *NFA) State(id StateID) State { return n.states[id] }

// IsEmpty reports whether this is the degenerate automaton of the empty
// pattern, whose start state is also its accept state.
func (n *NFA) IsEmpty() bool { return n.start == n.accept }
