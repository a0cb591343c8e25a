package regnfa

import (
	"fmt"

	"github.com/KromDaniel/regnfa/internal/compiler"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/KromDaniel/regnfa/internal/syntax"
)

// GenerateOptions configures Go code generation.
type GenerateOptions struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the generated type name (e.g., "Email" generates "type Email struct{}" with MatchString/MatchBytes)
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// NoPool disables sync.Pool for scratch reuse in the table engine
	NoPool bool

	// ForceTable uses the table engine even for automata small enough for the bitset engine
	ForceTable bool

	// GenerateTestFile generates a test file with tests and a benchmark (default: true if TestFileInputs provided)
	GenerateTestFile bool

	// TestFileInputs is a list of test inputs for the generated test file. If empty and GenerateTestFile is true, defaults to []string{"example"}
	TestFileInputs []string

	// MaxStates caps the automaton size. Zero means nfa.DefaultMaxStates.
	MaxStates int

	// Verbose logs generation decisions to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o GenerateOptions) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if o.MaxStates < 0 {
		return fmt.Errorf("max states cannot be negative")
	}
	return nil
}

// Generate writes a standalone Go matcher for opts.Pattern.
// It returns an error if the pattern is invalid or code generation fails.
func Generate(opts GenerateOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	postfix, err := syntax.Parse(opts.Pattern)
	if err != nil {
		return fmt.Errorf("failed to parse pattern: %w", err)
	}

	n, err := nfa.BuildWithLimit(postfix, opts.MaxStates)
	if err != nil {
		return fmt.Errorf("failed to build automaton: %w", err)
	}

	// Set default for GenerateTestFile
	generateTestFile := opts.GenerateTestFile
	testInputs := opts.TestFileInputs
	if len(testInputs) > 0 {
		generateTestFile = true
	} else if generateTestFile {
		// Test file explicitly requested but no inputs - use default
		testInputs = []string{"example"}
	}

	c := compiler.New(compiler.Config{
		Pattern:          opts.Pattern,
		Name:             opts.Name,
		Package:          opts.Package,
		NFA:              n,
		UsePool:          !opts.NoPool, // Invert: NoPool flag disables pool
		ForceTable:       opts.ForceTable,
		GenerateTestFile: generateTestFile,
		TestFileInputs:   testInputs,
		Verbose:          opts.Verbose,
	})
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
