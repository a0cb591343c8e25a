package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArrayFlagsString(t *testing.T) {
	tests := []struct {
		name     string
		flags    arrayFlags
		expected string
	}{
		{
			name:     "empty",
			flags:    arrayFlags{},
			expected: "",
		},
		{
			name:     "single",
			flags:    arrayFlags{"abb"},
			expected: "abb",
		},
		{
			name:     "multiple",
			flags:    arrayFlags{"abb", "", "a|b"},
			expected: "abb, , a|b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.flags.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestArrayFlagsSet(t *testing.T) {
	var flags arrayFlags

	// Test adding multiple values
	if err := flags.Set("aabb"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 1 || flags[0] != "aabb" {
		t.Errorf("Set() = %v, want [\"aabb\"]", flags)
	}

	if err := flags.Set(""); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 2 || flags[1] != "" {
		t.Errorf("Set() = %v, want [\"aabb\", \"\"]", flags)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStatus int
		wantOut    []string
		wantErr    string
	}{
		{
			name:       "version",
			args:       []string{"-version"},
			wantStatus: 0,
			wantOut:    []string{"regnfa version 1.0.0"},
		},
		{
			name:       "help",
			args:       []string{"-help"},
			wantStatus: 0,
			wantOut:    []string{"Usage: regnfa", "-pattern"},
		},
		{
			name:       "missing pattern",
			args:       nil,
			wantStatus: 1,
			wantErr:    "-pattern or -cases flag is required",
		},
		{
			name:       "all match",
			args:       []string{"-pattern", "(a|b)*abb", "-input", "abb", "-input", "babb"},
			wantStatus: 0,
			wantOut:    []string{"match\t\"abb\"", "match\t\"babb\""},
		},
		{
			name:       "one fails",
			args:       []string{"-pattern", "a{2,3}", "-input", "aa", "-input", "aaaa", "-dfa"},
			wantStatus: 1,
			wantOut:    []string{"match\t\"aa\"", "no match\t\"aaaa\""},
		},
		{
			name:       "empty pattern",
			args:       []string{"-pattern", "", "-input", ""},
			wantStatus: 0,
			wantOut:    []string{"match\t\"\""},
		},
		{
			name:       "explain",
			args:       []string{"-pattern", "[a-b]{2}", "-explain"},
			wantStatus: 0,
			wantOut:    []string{"expanded: (a|b)~(a|b)", "postfix:  ab|ab|~", "states:   12"},
		},
		{
			name:       "analyze",
			args:       []string{"-pattern", "[0-9]{3}", "-analyze"},
			wantStatus: 0,
			wantOut:    []string{"engine_labels:\n- Table", "- CharClass", "nfa_states: 114"},
		},
		{
			name:       "dot to stdout",
			args:       []string{"-pattern", "ab", "-dot", "-"},
			wantStatus: 0,
			wantOut:    []string{"digraph regnfa {"},
		},
		{
			name:       "compile error",
			args:       []string{"-pattern", "(a"},
			wantStatus: 1,
			wantErr:    "unbalanced grouping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.wantStatus {
				t.Errorf("run() = %d, want %d (stderr: %s)", got, tt.wantStatus, stderr.String())
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout.String())
				}
			}
			if tt.wantErr != "" && !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantErr, stderr.String())
			}
		})
	}
}

func TestRunCases(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join("..", "..", "pkg", "regnfa", "testdata", "cases.yaml")
	if got := run([]string{"-cases", path}, &stdout, &stderr); got != 0 {
		t.Fatalf("run() = %d\nstdout: %s\nstderr: %s", got, stdout.String(), stderr.String())
	}
	if !strings.Contains(stdout.String(), "0 failed") {
		t.Errorf("unexpected summary: %s", stdout.String())
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("- pattern: ab\n  match: [ab, abc]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout.Reset()
	if got := run([]string{"-cases", bad}, &stdout, &stderr); got != 1 {
		t.Errorf("run() = %d, want 1", got)
	}
	if !strings.Contains(stdout.String(), `FAIL "ab" on "abc": no match`) {
		t.Errorf("missing failure line:\n%s", stdout.String())
	}
}

func TestRunGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "email.go")
	var stdout, stderr bytes.Buffer
	args := []string{"-pattern", "[a-z]+@[a-z]+", "-generate", out, "-name", "Email", "-package", "email", "-input", "me@home"}
	if got := run(args, &stdout, &stderr); got != 0 {
		t.Fatalf("run() = %d, stderr: %s", got, stderr.String())
	}
	for _, name := range []string{"email.go", "email_test.go"} {
		if _, err := os.Stat(filepath.Join(filepath.Dir(out), name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
