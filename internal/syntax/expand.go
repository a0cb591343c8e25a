package syntax

import (
	"strings"
)

// MaxRepeat is the largest bound accepted inside {m,n}.
const MaxRepeat = 1000

// maxExpandedTokens bounds the token list produced by nested repetition.
const maxExpandedTokens = 1 << 22

// classStripped lists the bytes that can never be members of a character
// class: they are operators elsewhere in the grammar.
const classStripped = `*+?.()|~[]\{}`

// Expand tokenizes pattern, expanding character classes and bounded
// repetition into primitive operators, and inserts explicit Concat tokens
// between juxtaposed operands.
func Expand(pattern string) ([]Token, error) {
	e := &expander{pattern: pattern}
	if err := e.run(); err != nil {
		return nil, err
	}
	return insertConcat(e.out), nil
}

type expander struct {
	pattern string
	pos     int
	out     []Token
}

func (e *expander) emit(kind TokenKind, c byte, pos int) {
	e.out = append(e.out, Token{Kind: kind, Char: c, Pos: pos})
}

func (e *expander) run() error {
	for e.pos < len(e.pattern) {
		c := e.pattern[e.pos]
		switch c {
		case '[':
			if err := e.class(); err != nil {
				return err
			}
			continue
		case ']':
			return newError(ErrMalformedCharacterClass, e.pattern, e.pos, "unexpected ]")
		case '{':
			if err := e.quantifier(); err != nil {
				return err
			}
			continue
		case '}':
			return newError(ErrMalformedQuantifier, e.pattern, e.pos, "unexpected }")
		case '\\':
			return e.escape()
		case '^', '$':
			return newError(ErrUnsupportedSyntax, e.pattern, e.pos, "anchor %q", c)
		case '(':
			if e.pos+1 < len(e.pattern) && e.pattern[e.pos+1] == '?' {
				return e.groupExtension()
			}
			e.emit(LeftParen, 0, e.pos)
		case ')':
			e.emit(RightParen, 0, e.pos)
		case '|':
			e.emit(Alternate, 0, e.pos)
		case '*':
			e.emit(Star, 0, e.pos)
		case '+':
			e.emit(Plus, 0, e.pos)
		case '?':
			e.emit(Quest, 0, e.pos)
		case '.':
			e.emit(Wildcard, 0, e.pos)
		default:
			e.emit(Literal, c, e.pos)
		}
		e.pos++
	}
	return nil
}

func (e *expander) escape() error {
	if e.pos+1 < len(e.pattern) {
		if next := e.pattern[e.pos+1]; next >= '0' && next <= '9' {
			return newError(ErrUnsupportedSyntax, e.pattern, e.pos, "backreference \\%c", next)
		}
		return newError(ErrUnsupportedSyntax, e.pattern, e.pos, "escape sequence \\%c", e.pattern[e.pos+1])
	}
	return newError(ErrUnsupportedSyntax, e.pattern, e.pos, "trailing backslash")
}

// groupExtension reports the (?...) construct found at e.pos.
func (e *expander) groupExtension() error {
	rest := e.pattern[e.pos+2:]
	var what string
	switch {
	case strings.HasPrefix(rest, "<="):
		what = "lookbehind (?<=...)"
	case strings.HasPrefix(rest, "<!"):
		what = "negative lookbehind (?<!...)"
	case strings.HasPrefix(rest, "="):
		what = "lookahead (?=...)"
	case strings.HasPrefix(rest, "!"):
		what = "negative lookahead (?!...)"
	case strings.HasPrefix(rest, "<"), strings.HasPrefix(rest, "P<"):
		what = "named group (?<name>...)"
	case strings.HasPrefix(rest, ":"):
		what = "non-capturing group (?:...)"
	default:
		what = "group flags (?...)"
	}
	return newError(ErrUnsupportedSyntax, e.pattern, e.pos, "%s", what)
}

// class expands [...] or [^...] starting at e.pos into (c1|c2|...|ck).
func (e *expander) class() error {
	start := e.pos
	end := strings.IndexByte(e.pattern[start+1:], ']')
	if end < 0 {
		return newError(ErrMalformedCharacterClass, e.pattern, start, "missing ]")
	}
	end += start + 1

	bodyStart := start + 1
	negated := false
	if bodyStart < end && e.pattern[bodyStart] == '^' {
		negated = true
		bodyStart++
	}
	body := e.pattern[bodyStart:end]

	var listed [256]bool
	var order []byte
	add := func(c byte) {
		if !listed[c] {
			listed[c] = true
			order = append(order, c)
		}
	}
	for i := 0; i < len(body); i++ {
		lo := body[i]
		if i+2 < len(body) && body[i+1] == '-' {
			hi := body[i+2]
			if lo > hi {
				return newError(ErrMalformedCharacterClass, e.pattern, bodyStart+i, "invalid range %q-%q", lo, hi)
			}
			for c := int(lo); c <= int(hi); c++ {
				add(byte(c))
			}
			i += 2
			continue
		}
		add(lo)
	}

	var members []byte
	if negated {
		for c := 0; c < 256; c++ {
			if !listed[c] {
				members = append(members, byte(c))
			}
		}
	} else {
		members = order
	}

	first := true
	for _, c := range members {
		if strings.IndexByte(classStripped, c) >= 0 {
			continue
		}
		if first {
			e.emit(LeftParen, 0, start)
			first = false
		} else {
			e.emit(Alternate, 0, start)
		}
		e.emit(Literal, c, start)
	}
	if first {
		return newError(ErrMalformedCharacterClass, e.pattern, start, "class %q matches nothing", e.pattern[start:end+1])
	}
	e.emit(RightParen, 0, start)

	e.pos = end + 1
	return nil
}

// quantifier expands {m}, {m,}, {,n} or {m,n} at e.pos by repeating the
// atom that ends the token list built so far.
func (e *expander) quantifier() error {
	start := e.pos
	end := strings.IndexByte(e.pattern[start:], '}')
	if end < 0 {
		return newError(ErrMalformedQuantifier, e.pattern, start, "missing }")
	}
	end += start

	lo, hi, err := parseBounds(e.pattern[start+1 : end])
	if err != nil {
		return newError(ErrMalformedQuantifier, e.pattern, start, "%s", err.Error())
	}

	atomStart, err := e.precedingAtom(start)
	if err != nil {
		return err
	}
	atom := append([]Token(nil), e.out[atomStart:]...)
	copies := hi - lo
	if hi < 0 {
		copies = 1
	}
	if atomStart+(lo+copies)*(len(atom)+3) > maxExpandedTokens {
		return newError(ErrMalformedQuantifier, e.pattern, start, "repetition expands past %d tokens", maxExpandedTokens)
	}
	e.out = e.out[:atomStart]

	for i := 0; i < lo; i++ {
		e.out = append(e.out, atom...)
	}
	if hi < 0 {
		e.out = append(e.out, atom...)
		e.emit(Star, 0, start)
	} else {
		for i := lo; i < hi; i++ {
			e.emit(LeftParen, 0, start)
			e.out = append(e.out, atom...)
			e.emit(Quest, 0, start)
			e.emit(RightParen, 0, start)
		}
	}

	e.pos = end + 1
	return nil
}

// precedingAtom returns the index in e.out where the atom before a
// quantifier begins: the last operand, or the whole group closed by the
// last ')'.
func (e *expander) precedingAtom(at int) (int, error) {
	if len(e.out) == 0 {
		return 0, newError(ErrMalformedQuantifier, e.pattern, at, "nothing to repeat")
	}
	last := len(e.out) - 1
	switch e.out[last].Kind {
	case Literal, Wildcard:
		return last, nil
	case RightParen:
		depth := 0
		for i := last; i >= 0; i-- {
			switch e.out[i].Kind {
			case RightParen:
				depth++
			case LeftParen:
				depth--
				if depth == 0 {
					return i, nil
				}
			}
		}
		return 0, newError(ErrUnbalancedGrouping, e.pattern, e.out[last].Pos, "unmatched )")
	}
	return 0, newError(ErrMalformedQuantifier, e.pattern, at, "nothing to repeat")
}

// insertConcat places a Concat token between every pair of adjacent tokens
// where the left one can end an operand and the right one can start one.
func insertConcat(tokens []Token) []Token {
	out := make([]Token, 0, 2*len(tokens))
	for i, t := range tokens {
		if i > 0 && tokens[i-1].endsOperand() && t.startsOperand() {
			out = append(out, Token{Kind: Concat, Pos: t.Pos})
		}
		out = append(out, t)
	}
	return out
}
