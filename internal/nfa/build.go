package nfa

import (
	"fmt"

	"github.com/KromDaniel/regnfa/internal/syntax"
)

// DefaultMaxStates bounds the arena built by Build.
const DefaultMaxStates = 1 << 21

// fragment is a partially built automaton. Its accept state has no outgoing
// edges until another operator wires it up.
type fragment struct {
	start  StateID
	accept StateID
}

type builder struct {
	states    []State
	maxStates int
}

func (b *builder) newState(label Label) (StateID, error) {
	if len(b.states) >= b.maxStates {
		return NoState, fmt.Errorf("%w: limit is %d", ErrTooManyStates, b.maxStates)
	}
	b.states = append(b.states, State{Label: label, Edge1: NoState, Edge2: NoState})
	return StateID(len(b.states) - 1), nil
}

// newPair allocates a fresh start and accept state, start first.
func (b *builder) newPair(label Label) (StateID, StateID, error) {
	start, err := b.newState(label)
	if err != nil {
		return NoState, NoState, err
	}
	accept, err := b.newState(Label{Kind: Epsilon})
	if err != nil {
		return NoState, NoState, err
	}
	return start, accept, nil
}

// Build runs Thompson's construction over a postfix token stream using
// DefaultMaxStates.
func Build(postfix []syntax.Token) (*NFA, error) {
	return BuildWithLimit(postfix, DefaultMaxStates)
}

// BuildWithLimit is Build with an explicit state cap. maxStates <= 0 means
// DefaultMaxStates.
func BuildWithLimit(postfix []syntax.Token, maxStates int) (*NFA, error) {
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}
	b := &builder{
		states:    make([]State, 0, 2*len(postfix)+1),
		maxStates: maxStates,
	}

	if len(postfix) == 0 {
		s, err := b.newState(Label{Kind: Epsilon})
		if err != nil {
			return nil, err
		}
		return b.finish(fragment{start: s, accept: s}), nil
	}

	stack := make([]fragment, 0, 16)
	pop := func(t syntax.Token) (fragment, error) {
		if len(stack) == 0 {
			return fragment{}, &syntax.Error{
				Kind:   syntax.ErrMissingOperand,
				Pos:    t.Pos,
				Detail: fmt.Sprintf("%v has no operand", t.Kind),
			}
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, nil
	}

	for _, t := range postfix {
		var (
			result fragment
			err    error
		)
		switch t.Kind {
		case syntax.Literal, syntax.Wildcard:
			result, err = b.operand(t)
		case syntax.Concat:
			var left, right fragment
			if right, err = pop(t); err == nil {
				if left, err = pop(t); err == nil {
					result = b.concat(left, right)
				}
			}
		case syntax.Alternate:
			var left, right fragment
			if right, err = pop(t); err == nil {
				if left, err = pop(t); err == nil {
					result, err = b.alternate(left, right)
				}
			}
		case syntax.Star, syntax.Plus, syntax.Quest:
			var inner fragment
			if inner, err = pop(t); err == nil {
				result, err = b.repeat(t.Kind, inner)
			}
		default:
			err = &syntax.Error{
				Kind:   syntax.ErrUnbalancedGrouping,
				Pos:    t.Pos,
				Detail: fmt.Sprintf("unexpected %v in postfix stream", t.Kind),
			}
		}
		if err != nil {
			return nil, err
		}
		stack = append(stack, result)
	}

	if len(stack) != 1 {
		return nil, &syntax.Error{
			Kind:   syntax.ErrMissingOperand,
			Detail: fmt.Sprintf("construction left %d fragments", len(stack)),
		}
	}
	return b.finish(stack[0]), nil
}

func (b *builder) finish(f fragment) *NFA {
	return &NFA{
		states: b.states,
		start:  f.start,
		accept: f.accept,
	}
}

//	start[label] --edge1--> accept
func (b *builder) operand(t syntax.Token) (fragment, error) {
	label := Label{Kind: Literal, Char: t.Char}
	if t.Kind == syntax.Wildcard {
		label = Label{Kind: Wildcard}
	}
	start, accept, err := b.newPair(label)
	if err != nil {
		return fragment{}, err
	}
	b.states[start].Edge1 = accept
	return fragment{start: start, accept: accept}, nil
}

//	left.start ... left.accept --edge1--> right.start ... right.accept
func (b *builder) concat(left, right fragment) fragment {
	b.states[left.accept].Edge1 = right.start
	return fragment{start: left.start, accept: right.accept}
}

//	         +--edge1--> left.start ... left.accept --+
//	start ---+                                        +--> accept
//	         +--edge2--> right.start ... right.accept -+
func (b *builder) alternate(left, right fragment) (fragment, error) {
	start, accept, err := b.newPair(Label{Kind: Epsilon})
	if err != nil {
		return fragment{}, err
	}
	b.states[start].Edge1 = left.start
	b.states[start].Edge2 = right.start
	b.states[left.accept].Edge1 = accept
	b.states[right.accept].Edge1 = accept
	return fragment{start: start, accept: accept}, nil
}

// repeat wires '*', '+' and '?' around inner:
//
//	*: start -> inner.start | accept;  inner.accept -> inner.start | accept
//	+: start -> inner.start;           inner.accept -> inner.start | accept
//	?: start -> inner.start | accept;  inner.accept -> accept
func (b *builder) repeat(kind syntax.TokenKind, inner fragment) (fragment, error) {
	start, accept, err := b.newPair(Label{Kind: Epsilon})
	if err != nil {
		return fragment{}, err
	}
	b.states[start].Edge1 = inner.start
	if kind != syntax.Plus {
		b.states[start].Edge2 = accept
	}
	if kind == syntax.Quest {
		b.states[inner.accept].Edge1 = accept
	} else {
		b.states[inner.accept].Edge1 = inner.start
		b.states[inner.accept].Edge2 = accept
	}
	return fragment{start: start, accept: accept}, nil
}
