// Package syntax turns an infix pattern into a postfix token stream.
//
// The pipeline has two stages. Expand rewrites bounded repetition and
// character classes into primitive operators and marks concatenation
// explicitly. ToPostfix then reorders the tokens with the shunting-yard
// algorithm so that the automaton builder can consume them with a stack.
package syntax

import "strings"

// TokenKind identifies what a token contributes to the expression.
type TokenKind uint8

const (
	// Literal matches exactly one byte.
	Literal TokenKind = iota
	// Wildcard matches any single byte ('.').
	Wildcard
	// Concat is the explicit concatenation operator.
	Concat
	// Alternate is '|'.
	Alternate
	// Star is '*', zero or more.
	Star
	// Plus is '+', one or more.
	Plus
	// Quest is '?', zero or one.
	Quest
	// LeftParen opens a group.
	LeftParen
	// RightParen closes a group.
	RightParen
)

// ConcatMarker is the byte used to render Concat tokens.
const ConcatMarker = '~'

var kindNames = [...]string{
	Literal:    "Literal",
	Wildcard:   "Wildcard",
	Concat:     "Concat",
	Alternate:  "Alternate",
	Star:       "Star",
	Plus:       "Plus",
	Quest:      "Quest",
	LeftParen:  "LeftParen",
	RightParen: "RightParen",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TokenKind(?)"
}

// Token is a single element of an infix or postfix expression.
type Token struct {
	Kind TokenKind
	Char byte // only meaningful for Literal
	Pos  int  // byte offset of the source character that produced the token
}

// IsOperand reports whether the token is a literal or wildcard.
func (t Token) IsOperand() bool {
	return t.Kind == Literal || t.Kind == Wildcard
}

// IsOperator reports whether the token is a unary or binary operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Concat, Alternate, Star, Plus, Quest:
		return true
	}
	return false
}

// endsOperand reports whether an operand may end at t.
func (t Token) endsOperand() bool {
	switch t.Kind {
	case Literal, Wildcard, RightParen, Star, Plus, Quest:
		return true
	}
	return false
}

// startsOperand reports whether an operand may start at t.
func (t Token) startsOperand() bool {
	switch t.Kind {
	case Literal, Wildcard, LeftParen:
		return true
	}
	return false
}

// precedence of operators; parentheses sit at 0 so they are never popped
// by an operator.
func (t Token) precedence() int {
	switch t.Kind {
	case Star, Plus, Quest:
		return 3
	case Concat:
		return 2
	case Alternate:
		return 1
	}
	return 0
}

func (t Token) symbol() byte {
	switch t.Kind {
	case Literal:
		return t.Char
	case Wildcard:
		return '.'
	case Concat:
		return ConcatMarker
	case Alternate:
		return '|'
	case Star:
		return '*'
	case Plus:
		return '+'
	case Quest:
		return '?'
	case LeftParen:
		return '('
	case RightParen:
		return ')'
	}
	return 0
}

// String renders tokens as text, using ConcatMarker for concatenation.
// Non-printable literal bytes are written as \xNN.
func String(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		c := t.symbol()
		if t.Kind == Literal && (c < 0x20 || c >= 0x7f) {
			const hex = "0123456789abcdef"
			b.WriteString(`\x`)
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
