package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"empty", "", ""},
		{"literal", "abc", "a~b~c"},
		{"alternation", "a|b", "a|b"},
		{"star", "ab*c", "a~b*~c"},
		{"groups", "(a)(b)", "(a)~(b)"},
		{"wildcard", "a.b", "a~.~b"},
		{"non alphanumeric literal", "a-b", "a~-~b"},
		{"exact", "a{3}", "a~a~a"},
		{"at least", "a{2,}", "a~a~a*"},
		{"bounded", "a{2,3}", "a~a~(a?)"},
		{"at most", "a{,2}", "(a?)~(a?)"},
		{"zero", "a{0}b", "b"},
		{"group exact", "(ab){2}", "(a~b)~(a~b)"},
		{"nested group", "((a)b){2}", "((a)~b)~((a)~b)"},
		{"class", "[abc]", "(a|b|c)"},
		{"class range", "[a-c]x", "(a|b|c)~x"},
		{"class duplicates", "[aba]", "(a|b)"},
		{"class dash edges", "[-a-]", "(-|a)"},
		{"class strips operators", "x[.a*]", "x~(a)"},
		{"class repeated", "[a-c]{2}", "(a|b|c)~(a|b|c)"},
		{"wildcard repeated", ".{2}", ".~."},
		{"quantifier after quantified group", "(a{2}){2}", "(a~a)~(a~a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Expand(tt.pattern)
			if err != nil {
				t.Fatalf("Expand(%q) returned error: %v", tt.pattern, err)
			}
			if diff := cmp.Diff(tt.want, String(tokens)); diff != "" {
				t.Errorf("Expand(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestExpandNegatedClass(t *testing.T) {
	tokens, err := Expand("[^a-c]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var members []byte
	for _, tok := range tokens {
		if tok.Kind == Literal {
			members = append(members, tok.Char)
		}
	}

	want := 256 - 3 - len(classStripped)
	if len(members) != want {
		t.Fatalf("negated class has %d members, want %d", len(members), want)
	}
	for i := 1; i < len(members); i++ {
		if members[i-1] >= members[i] {
			t.Fatalf("members not ascending at %d: %d >= %d", i, members[i-1], members[i])
		}
	}
	for _, c := range members {
		if c >= 'a' && c <= 'c' {
			t.Errorf("negated class contains %q", c)
		}
		if strings.IndexByte(classStripped, c) >= 0 {
			t.Errorf("negated class contains operator byte %q", c)
		}
	}
	if members[0] != 0 || members[len(members)-1] != 255 {
		t.Errorf("negated class bounds = %d..%d, want 0..255", members[0], members[len(members)-1])
	}
}

func TestToPostfix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", ""},
		{"a", "a"},
		{"abc", "ab~c~"},
		{"a|b|c", "ab|c|"},
		{"a|bc*", "abc*~|"},
		{"(a|b)c", "ab|c~"},
		{"a*b", "a*b~"},
		{"ab+?", "ab+?~"},
		{"(ab)*", "ab~*"},
		{"()", ""},
		{"a**", "a**"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			postfix, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.pattern, err)
			}
			if diff := cmp.Diff(tt.want, String(postfix)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"(a", ErrUnbalancedGrouping},
		{"a)", ErrUnbalancedGrouping},
		{"((a)", ErrUnbalancedGrouping},
		{"a){2}", ErrUnbalancedGrouping},
		{"a{2", ErrMalformedQuantifier},
		{"a}", ErrMalformedQuantifier},
		{"a{3,2}", ErrMalformedQuantifier},
		{"a{x}", ErrMalformedQuantifier},
		{"a{-1}", ErrMalformedQuantifier},
		{"a{}", ErrMalformedQuantifier},
		{"a{,}", ErrMalformedQuantifier},
		{"{2}", ErrMalformedQuantifier},
		{"a*{2}", ErrMalformedQuantifier},
		{"a{1001}", ErrMalformedQuantifier},
		{"((a{1000}){1000}){1000}", ErrMalformedQuantifier},
		{"[a", ErrMalformedCharacterClass},
		{"a]", ErrMalformedCharacterClass},
		{"[c-a]", ErrMalformedCharacterClass},
		{"[*+]", ErrMalformedCharacterClass},
		{"[]", ErrMalformedCharacterClass},
		{"(?<name>a)", ErrUnsupportedSyntax},
		{"(?P<name>a)", ErrUnsupportedSyntax},
		{"(?=a)", ErrUnsupportedSyntax},
		{"(?!a)", ErrUnsupportedSyntax},
		{"(?<=a)b", ErrUnsupportedSyntax},
		{"(?<!a)b", ErrUnsupportedSyntax},
		{`(a)\1`, ErrUnsupportedSyntax},
		{`a\`, ErrUnsupportedSyntax},
		{"^a", ErrUnsupportedSyntax},
		{"a$", ErrUnsupportedSyntax},
		{"*a", ErrMissingOperand},
		{"a||b", ErrMissingOperand},
		{"|", ErrMissingOperand},
		{"a|", ErrMissingOperand},
		{"a()", ErrMissingOperand},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.pattern, tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want kind %v", tt.pattern, err, tt.want)
			}
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("Parse(%q) error %T is not *Error", tt.pattern, err)
			}
			if serr.Pattern != tt.pattern {
				t.Errorf("Error.Pattern = %q, want %q", serr.Pattern, tt.pattern)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Parse("ab{2")
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if serr.Pos != 2 {
		t.Errorf("Pos = %d, want 2", serr.Pos)
	}
	if !strings.Contains(err.Error(), "missing }") {
		t.Errorf("error %q does not mention the missing brace", err.Error())
	}
}

func TestTokenString(t *testing.T) {
	tokens := []Token{
		{Kind: LeftParen},
		{Kind: Literal, Char: 'a'},
		{Kind: Alternate},
		{Kind: Literal, Char: 0x01},
		{Kind: RightParen},
		{Kind: Concat},
		{Kind: Wildcard},
		{Kind: Star},
	}
	if got, want := String(tokens), `(a|\x01)~.*`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
