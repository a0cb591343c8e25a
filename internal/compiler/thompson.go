package compiler

import (
	"fmt"

	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// MaxBitsetStates is the largest automaton the bitset engine can encode.
const MaxBitsetStates = 64

// Label kinds as stored in the generated kinds table.
const (
	tableEpsilon  = 0
	tableLiteral  = 1
	tableWildcard = 2
)

// ThompsonGenerator generates Thompson NFA simulation code.
// Thompson's algorithm simulates all possible NFA states simultaneously,
// guaranteeing O(n*m) time complexity where n = input length, m = states.
type ThompsonGenerator struct {
	compiler   *Compiler
	nfa        *nfa.NFA
	stateCount int
	charStates []nfa.StateID // States that consume characters
	helper     string        // Name of the generic match helper
}

// NewThompsonGenerator creates a new Thompson NFA generator.
func NewThompsonGenerator(c *Compiler) *ThompsonGenerator {
	n := c.config.NFA
	return &ThompsonGenerator{
		compiler:   c,
		nfa:        n,
		stateCount: n.Len(),
		charStates: n.ConsumingStates(),
		helper:     codegen.HelperName(c.config.Name, "match"),
	}
}

// CanUseBitset returns true if every state fits in a uint64 mask.
func (g *ThompsonGenerator) CanUseBitset() bool {
	return g.stateCount <= MaxBitsetStates
}

// helperFunc starts the declaration of
//
//	func <name>Match[T string | []byte](input T) bool
func (g *ThompsonGenerator) helperFunc() *jen.Statement {
	return g.compiler.file.Func().Id(g.helper).
		Types(jen.Id(codegen.TypeParamName).Union(jen.String(), jen.Index().Byte())).
		Params(jen.Id(codegen.InputName).Id(codegen.TypeParamName)).
		Params(jen.Bool())
}

func (g *ThompsonGenerator) mask(ids []nfa.StateID) uint64 {
	var m uint64
	for _, id := range ids {
		m |= uint64(1) << uint(id)
	}
	return m
}

func (g *ThompsonGenerator) startAccepts() bool {
	for _, id := range g.nfa.Closure(g.nfa.Start()) {
		if id == g.nfa.Accept() {
			return true
		}
	}
	return false
}

// GenerateBitsetMatcher generates the match helper using one uint64 per
// state set.
func (g *ThompsonGenerator) GenerateBitsetMatcher() error {
	if !g.CanUseBitset() {
		return errTooManyStatesForBitset(g.stateCount)
	}
	g.compiler.logger.Section("Code Generation")
	g.compiler.logger.Log("Generating bitset Thompson NFA match function (states: %d)", g.stateCount)

	if len(g.charStates) == 0 {
		// Nothing consumes input: only the empty string can be accepted.
		result := jen.False()
		if g.startAccepts() {
			result = jen.Len(jen.Id(codegen.InputName)).Op("==").Lit(0)
		}
		g.helperFunc().Block(jen.Return(result))
		g.compiler.file.Line()
		return nil
	}

	code := []jen.Code{
		// Initialize length
		jen.Id(codegen.InputLenName).Op(":=").Len(jen.Id(codegen.InputName)),
		jen.Line(),
		jen.Comment("Thompson NFA state sets (bitset representation)"),
		jen.Var().List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Uint64(),
		jen.Line(),
		jen.Comment("Precomputed constants"),
		jen.Id(codegen.StartClosureName).Op(":=").Lit(g.mask(g.nfa.Closure(g.nfa.Start()))),
		jen.Id(codegen.AcceptMaskName).Op(":=").Lit(g.mask([]nfa.StateID{g.nfa.Accept()})),
	}

	code = append(code, g.generateEpsilonClosureLookup()...)

	code = append(code,
		jen.Line(),
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.StartClosureName),
		jen.For(
			jen.Id(codegen.OffsetName).Op(":=").Lit(0),
			jen.Id(codegen.OffsetName).Op("<").Id(codegen.InputLenName),
			jen.Id(codegen.OffsetName).Op("++"),
		).Block(g.generateTransitionBlock()...),
		jen.Line(),
		jen.Comment("Accept only if the whole input was consumed into the accept state"),
		jen.Return(jen.Id(codegen.CurrentName).Op("&").Id(codegen.AcceptMaskName).Op("!=").Lit(0)),
	)

	g.helperFunc().Block(code...)
	g.compiler.file.Line()
	return nil
}

// generateEpsilonClosureLookup generates the epsilon closure lookup table.
func (g *ThompsonGenerator) generateEpsilonClosureLookup() []jen.Code {
	// Only generate for states that need it (character-consuming states)
	closureEntries := make([]jen.Code, 0, len(g.charStates))
	for _, state := range g.charStates {
		next := g.nfa.State(state).Edge1
		closureEntries = append(closureEntries,
			jen.Lit(int(state)).Op(":").Lit(g.mask(g.nfa.Closure(next))),
		)
	}

	return []jen.Code{
		jen.Line(),
		jen.Comment("Epsilon closure lookup for next states after character transitions"),
		jen.Id(codegen.ClosuresName).Op(":=").Index(jen.Lit(g.stateCount)).Uint64().Values(closureEntries...),
	}
}

func (g *ThompsonGenerator) needsChar() bool {
	for _, id := range g.charStates {
		if g.nfa.State(id).Label.Kind == nfa.Literal {
			return true
		}
	}
	return false
}

// generateTransitionBlock generates the inner transition logic.
func (g *ThompsonGenerator) generateTransitionBlock() []jen.Code {
	var block []jen.Code
	if g.needsChar() {
		block = append(block, jen.Id(codegen.CharName).Op(":=").Id(codegen.InputName).Index(jen.Id(codegen.OffsetName)))
	}
	block = append(block,
		jen.Id(codegen.NextName).Op("=").Lit(0),
		jen.Line(),
	)

	// Generate transition code for each character-consuming state
	for _, id := range g.charStates {
		block = append(block, g.generateStateTransition(id)...)
	}

	block = append(block,
		jen.Line(),
		jen.Comment("Update current state set"),
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.NextName),
		jen.Line(),
		jen.Comment("Check for dead end"),
		jen.If(jen.Id(codegen.CurrentName).Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
	)
	return block
}

// generateStateTransition generates transition code for a single state.
func (g *ThompsonGenerator) generateStateTransition(id nfa.StateID) []jen.Code {
	st := g.nfa.State(id)
	active := jen.Id(codegen.CurrentName).Op("&").Lit(uint64(1) << uint(id)).Op("!=").Lit(0)

	var condition *jen.Statement
	switch st.Label.Kind {
	case nfa.Literal:
		condition = active.Op("&&").Id(codegen.CharName).Op("==").Add(byteLit(st.Label.Char))
	case nfa.Wildcard:
		condition = active
	default:
		return nil
	}

	return []jen.Code{
		jen.Comment(codegen.StateComment(int32(id))),
		jen.If(condition).Block(
			jen.Id(codegen.NextName).Op("|=").Id(codegen.ClosuresName).Index(jen.Lit(int(id))),
		),
	}
}

// GenerateTableMatcher generates the match helper for automata of any
// size. State sets are int32 slices deduplicated with a mark table.
func (g *ThompsonGenerator) GenerateTableMatcher() error {
	g.compiler.logger.Section("Code Generation")
	g.compiler.logger.Log("Generating table Thompson NFA match function (states: %d)", g.stateCount)

	g.generateTables()
	g.compiler.generateScratchType(g.stateCount)
	if g.compiler.config.UsePool {
		g.compiler.generateScratchPool()
	}

	name := g.compiler.config.Name
	kinds := codegen.HelperName(name, "kinds")
	chars := codegen.HelperName(name, "chars")
	closures := codegen.HelperName(name, "closures")
	startClosure := codegen.HelperName(name, "startClosure")
	accept := codegen.HelperName(name, "accept")

	code := g.compiler.scratchInit()
	code = append(code,
		jen.Id(codegen.CurrentName).Op(":=").Append(
			jen.Id(codegen.ScratchName).Dot("current").Index(jen.Empty(), jen.Lit(0)),
			jen.Id(startClosure).Op("..."),
		),
		jen.Id(codegen.NextName).Op(":=").Id(codegen.ScratchName).Dot("next").Index(jen.Empty(), jen.Lit(0)),
		jen.Id(codegen.MarkName).Op(":=").Id(codegen.ScratchName).Dot("mark"),
		jen.Defer().Func().Params().Block(
			jen.Id(codegen.ScratchName).Dot("current").Op("=").Id(codegen.CurrentName).Index(jen.Empty(), jen.Lit(0)),
			jen.Id(codegen.ScratchName).Dot("next").Op("=").Id(codegen.NextName).Index(jen.Empty(), jen.Lit(0)),
		).Call(),
		jen.Line(),
		jen.For(
			jen.Id(codegen.OffsetName).Op(":=").Lit(0),
			jen.Id(codegen.OffsetName).Op("<").Len(jen.Id(codegen.InputName)),
			jen.Id(codegen.OffsetName).Op("++"),
		).Block(
			jen.Id(codegen.CharName).Op(":=").Id(codegen.InputName).Index(jen.Id(codegen.OffsetName)),
			jen.Id(codegen.NextName).Op("=").Id(codegen.NextName).Index(jen.Empty(), jen.Lit(0)),
			jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id(codegen.CurrentName)).Block(
				jen.Switch(jen.Id(kinds).Index(jen.Id("s"))).Block(
					jen.Case(jen.Lit(tableLiteral)).Block(
						jen.If(jen.Id(chars).Index(jen.Id("s")).Op("!=").Id(codegen.CharName)).Block(jen.Continue()),
					),
					jen.Case(jen.Lit(tableWildcard)).Block(),
					jen.Default().Block(jen.Continue()),
				),
				jen.For(jen.List(jen.Id("_"), jen.Id("t")).Op(":=").Range().Id(closures).Index(jen.Id("s"))).Block(
					jen.If(jen.Op("!").Id(codegen.MarkName).Index(jen.Id("t"))).Block(
						jen.Id(codegen.MarkName).Index(jen.Id("t")).Op("=").True(),
						jen.Id(codegen.NextName).Op("=").Append(jen.Id(codegen.NextName), jen.Id("t")),
					),
				),
			),
			jen.For(jen.List(jen.Id("_"), jen.Id("t")).Op(":=").Range().Id(codegen.NextName)).Block(
				jen.Id(codegen.MarkName).Index(jen.Id("t")).Op("=").False(),
			),
			jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Op("=").List(jen.Id(codegen.NextName), jen.Id(codegen.CurrentName)),
			jen.If(jen.Len(jen.Id(codegen.CurrentName)).Op("==").Lit(0)).Block(
				jen.Return(jen.False()),
			),
		),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id(codegen.CurrentName)).Block(
			jen.If(jen.Id("s").Op("==").Id(accept)).Block(jen.Return(jen.True())),
		),
		jen.Return(jen.False()),
	)

	g.helperFunc().Block(code...)
	g.compiler.file.Line()
	return nil
}

// generateTables emits the per-state kind, char and closure tables.
func (g *ThompsonGenerator) generateTables() {
	name := g.compiler.config.Name
	file := g.compiler.file

	var kinds, chars, closures []jen.Code
	for _, id := range g.charStates {
		st := g.nfa.State(id)
		kind := tableWildcard
		if st.Label.Kind == nfa.Literal {
			kind = tableLiteral
			chars = append(chars, jen.Lit(int(id)).Op(":").Add(byteLit(st.Label.Char)))
		}
		kinds = append(kinds, jen.Lit(int(id)).Op(":").Lit(kind))
		closures = append(closures, jen.Lit(int(id)).Op(":").Values(int32Lits(g.nfa.Closure(st.Edge1))...))
	}

	file.Comment("Label kinds per state: 0 epsilon, 1 literal, 2 wildcard")
	file.Var().Id(codegen.HelperName(name, "kinds")).Op("=").Index(jen.Lit(g.stateCount)).Uint8().Values(kinds...)
	file.Var().Id(codegen.HelperName(name, "chars")).Op("=").Index(jen.Lit(g.stateCount)).Byte().Values(chars...)
	file.Comment("Epsilon closures of the successor of every consuming state")
	file.Var().Id(codegen.HelperName(name, "closures")).Op("=").Index(jen.Lit(g.stateCount)).Index().Int32().Values(closures...)
	file.Var().Id(codegen.HelperName(name, "startClosure")).Op("=").Index().Int32().Values(int32Lits(g.nfa.Closure(g.nfa.Start()))...)
	file.Const().Id(codegen.HelperName(name, "accept")).Op("=").Lit(int32(g.nfa.Accept()))
	file.Line()
}

func errTooManyStatesForBitset(states int) error {
	return fmt.Errorf("bitset engine supports at most %d states, automaton has %d", MaxBitsetStates, states)
}

func int32Lits(ids []nfa.StateID) []jen.Code {
	out := make([]jen.Code, len(ids))
	for i, id := range ids {
		out[i] = jen.Lit(int(id))
	}
	return out
}

// byteLit renders printable ASCII as a rune literal and everything else
// as byte(0xNN).
func byteLit(c byte) jen.Code {
	if c >= 0x20 && c < 0x7f {
		return jen.LitRune(rune(c))
	}
	return jen.LitByte(c)
}
