package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/KromDaniel/regnfa/internal/syntax"
)

func buildNFA(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	postfix, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("failed to parse pattern: %v", err)
	}
	n, err := nfa.Build(postfix)
	if err != nil {
		t.Fatalf("failed to build automaton: %v", err)
	}
	return n
}

func TestCompilerGenerate(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		forceTable bool
		usePool    bool
		wantTable  bool
	}{
		{"simple", "test", false, false, false},
		{"empty", "", false, false, false},
		{"wildcard", ".", false, false, false},
		{"alternation", "a|b", false, false, false},
		{"class", "[a-c]+x", false, false, false},
		{"forced table", "(a|b)*abb", true, false, true},
		{"forced table pooled", "(a|b)*abb", true, true, true},
		{"large", "a{40}", false, true, true},
		{"quote", "\"x", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			outputFile := filepath.Join(tmpDir, "test.go")

			c := New(Config{
				Pattern:    tt.pattern,
				Name:       "Test",
				OutputFile: outputFile,
				Package:    "test",
				NFA:        buildNFA(t, tt.pattern),
				ForceTable: tt.forceTable,
				UsePool:    tt.usePool,
			})
			if c.useTable != tt.wantTable {
				t.Errorf("useTable = %v, want %v", c.useTable, tt.wantTable)
			}

			// Generate code; formatFile rejects anything that does not parse
			if err := c.Generate(); err != nil {
				t.Fatalf("generation failed: %v", err)
			}

			src, err := os.ReadFile(outputFile)
			if err != nil {
				t.Fatalf("output file was not created: %v", err)
			}
			code := string(src)
			for _, want := range []string{
				"DO NOT EDIT.",
				"type Test struct{}",
				"var CompiledTest = Test{}",
				"func (Test) MatchString(input string) bool",
				"func (Test) MatchBytes(input []byte) bool",
				"func testMatch[T string | []byte](input T) bool",
			} {
				if !strings.Contains(code, want) {
					t.Errorf("generated code missing %q:\n%s", want, code)
				}
			}
			if got := strings.Contains(code, "testScratch"); got != tt.wantTable {
				t.Errorf("scratch type present = %v, want %v", got, tt.wantTable)
			}
			if got := strings.Contains(code, "sync.Pool"); got != (tt.wantTable && tt.usePool) {
				t.Errorf("sync.Pool present = %v", got)
			}
		})
	}
}

func TestGenerateTestFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "email.go")

	c := New(Config{
		Pattern:          "[a-z]+@[a-z]+",
		Name:             "Email",
		OutputFile:       outputFile,
		Package:          "email",
		NFA:              buildNFA(t, "[a-z]+@[a-z]+"),
		GenerateTestFile: true,
		TestFileInputs:   []string{"me@home", "me@", "@home"},
	})
	if err := c.Generate(); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	src, err := os.ReadFile(filepath.Join(tmpDir, "email_test.go"))
	if err != nil {
		t.Fatalf("test file was not created: %v", err)
	}
	code := string(src)
	for _, want := range []string{
		"func TestEmailMatchString(t *testing.T)",
		"func BenchmarkEmailMatchString(b *testing.B)",
		`{"me@home", true}`,
		`{"me@", false}`,
		`{"@home", false}`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated test missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateWithoutAutomaton(t *testing.T) {
	c := New(Config{Pattern: "a", Name: "Test", Package: "test", OutputFile: filepath.Join(t.TempDir(), "x.go")})
	if err := c.Generate(); err == nil {
		t.Fatal("expected an error without an automaton")
	}
}

func TestBitsetLimit(t *testing.T) {
	c := New(Config{Pattern: "a{40}", Name: "Test", Package: "test", NFA: buildNFA(t, "a{40}")})
	if err := NewThompsonGenerator(c).GenerateBitsetMatcher(); err == nil {
		t.Fatal("expected bitset generation to fail for 80 states")
	}
}

func TestVerboseLogging(t *testing.T) {
	c := New(Config{
		Pattern:    "a|b",
		Name:       "Test",
		Package:    "test",
		OutputFile: filepath.Join(t.TempDir(), "test.go"),
		NFA:        buildNFA(t, "a|b"),
		Verbose:    true,
	})
	var buf strings.Builder
	c.Logger().SetOutput(&buf)
	if err := c.Generate(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"[regnfa] === Code Generation ===", "bitset Thompson NFA match function (states: 6)"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
