package codegen

import "testing"

func TestStateComment(t *testing.T) {
	tests := []struct {
		id   int32
		want string
	}{
		{0, "State 0"},
		{1, "State 1"},
		{100, "State 100"},
	}

	for _, tt := range tests {
		got := StateComment(tt.id)
		if got != tt.want {
			t.Errorf("StateComment(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestHelperName(t *testing.T) {
	tests := []struct {
		typeName string
		suffix   string
		want     string
	}{
		{"Email", "match", "emailMatch"},
		{"Date", "Scratch", "dateScratch"},
		{"X", "pool", "xPool"},
	}

	for _, tt := range tests {
		got := HelperName(tt.typeName, tt.suffix)
		if got != tt.want {
			t.Errorf("HelperName(%q, %q) = %q, want %q", tt.typeName, tt.suffix, got, tt.want)
		}
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"A", "a"},
		{"ABC", "aBC"},
		{"Hello", "hello"},
		{"hello", "hello"},
		{"X", "x"},
	}

	for _, tt := range tests {
		got := LowerFirst(tt.input)
		if got != tt.want {
			t.Errorf("LowerFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"hello", "Hello"},
		{"Hello", "Hello"},
		{"x", "X"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
