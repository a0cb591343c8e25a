// Package compiler generates standalone Go matchers from compiled automata.
package compiler

import (
	"fmt"
	"go/format"
	"os"

	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string
	Name             string
	OutputFile       string
	Package          string
	NFA              *nfa.NFA
	UsePool          bool     // Enable sync.Pool for scratch reuse in the table engine
	ForceTable       bool     // Use the table engine even when a bitset would fit
	GenerateTestFile bool     // Generate test file with expectations from the runtime simulator
	TestFileInputs   []string // Test inputs for generated test file
	Verbose          bool     // Enable verbose logging of generation decisions
}

// Compiler generates Go code for one automaton.
type Compiler struct {
	config   Config
	file     *jen.File
	logger   *Logger
	useTable bool // true when the bitset engine cannot hold every state
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	c := &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}

	c.logger.Section("Automaton")
	c.logger.Log("Pattern: %s", config.Pattern)
	if config.NFA != nil {
		c.logger.Log("NFA states: %d", config.NFA.Len())
		c.logger.Log("Consuming states: %d", len(config.NFA.ConsumingStates()))
		c.useTable = config.ForceTable || config.NFA.Len() > MaxBitsetStates
	}

	c.logger.Section("Engine Selection")
	if c.useTable {
		c.logger.Log("Match engine: table-driven Thompson NFA (pool: %v)", config.UsePool)
	} else {
		c.logger.Log("Match engine: bitset Thompson NFA")
	}
	return c
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// Logger returns the compiler's logger.
func (c *Compiler) Logger() *Logger {
	return c.logger
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if c.config.NFA == nil {
		return fmt.Errorf("no automaton to generate")
	}

	c.file.Comment(fmt.Sprintf("Code generated by regnfa for pattern: %q", c.config.Pattern))
	c.file.Comment("DO NOT EDIT.")
	c.file.Line()

	// Generate the main struct type
	c.file.Type().Id(c.config.Name).Struct()
	c.file.Line()

	// Generate convenience variable for direct usage
	c.file.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	c.file.Line()

	gen := NewThompsonGenerator(c)
	var err error
	if c.useTable {
		err = gen.GenerateTableMatcher()
	} else {
		err = gen.GenerateBitsetMatcher()
	}
	if err != nil {
		return fmt.Errorf("failed to generate match function: %w", err)
	}

	helper := codegen.HelperName(c.config.Name, "match")

	// Add MatchString method
	c.method("MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(jen.Return(jen.Id(helper).Call(jen.Id(codegen.InputName))))

	// Add MatchBytes method
	c.method("MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(jen.Return(jen.Id(helper).Call(jen.Id(codegen.InputName))))

	// Add String method returning the source pattern
	c.method("String").
		Params().
		Params(jen.String()).
		Block(jen.Return(jen.Lit(c.config.Pattern)))

	// Save to file
	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	// Format the generated file
	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}

	// Generate test file if requested
	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
