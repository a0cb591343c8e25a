package compiler

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

// testFilePath returns the path of the generated test file.
func (c *Compiler) testFilePath() string {
	return strings.TrimSuffix(c.config.OutputFile, ".go") + "_test.go"
}

// generateTestFile writes a table test and a benchmark next to the
// generated matcher. Expected results come from the runtime simulator.
func (c *Compiler) generateTestFile() error {
	name := c.config.Name
	f := jen.NewFile(c.config.Package)
	f.Comment(fmt.Sprintf("Code generated by regnfa for pattern: %q", c.config.Pattern))
	f.Comment("DO NOT EDIT.")
	f.Line()

	cases := make([]jen.Code, 0, len(c.config.TestFileInputs))
	for _, input := range c.config.TestFileInputs {
		cases = append(cases, jen.Values(jen.Lit(input), jen.Lit(c.config.NFA.MatchString(input))))
	}

	f.Func().Id(fmt.Sprintf("Test%sMatchString", name)).Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("input").String(),
			jen.Id("want").Bool(),
		).Values(cases...),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.If(
				jen.Id("got").Op(":=").Id("Compiled"+name).Dot("MatchString").Call(jen.Id("tt").Dot("input")),
				jen.Id("got").Op("!=").Id("tt").Dot("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchString(%q) = %v, want %v"), jen.Id("tt").Dot("input"), jen.Id("got"), jen.Id("tt").Dot("want")),
			),
			jen.If(
				jen.Id("got").Op(":=").Id("Compiled"+name).Dot("MatchBytes").Call(jen.Index().Byte().Parens(jen.Id("tt").Dot("input"))),
				jen.Id("got").Op("!=").Id("tt").Dot("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchBytes(%q) = %v, want %v"), jen.Id("tt").Dot("input"), jen.Id("got"), jen.Id("tt").Dot("want")),
			),
		),
	)
	f.Line()

	f.Func().Id(fmt.Sprintf("Benchmark%sMatchString", name)).Params(jen.Id("b").Op("*").Qual("testing", "B")).Block(
		jen.Id("inputs").Op(":=").Index().String().ValuesFunc(func(g *jen.Group) {
			for _, input := range c.config.TestFileInputs {
				g.Lit(input)
			}
		}),
		jen.If(jen.Len(jen.Id("inputs")).Op("==").Lit(0)).Block(
			jen.Id("b").Dot("Skip").Call(jen.Lit("no inputs")),
		),
		jen.Id("b").Dot("ResetTimer").Call(),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("b").Dot("N"), jen.Id("i").Op("++")).Block(
			jen.Id("Compiled"+name).Dot("MatchString").Call(jen.Id("inputs").Index(jen.Id("i").Op("%").Len(jen.Id("inputs")))),
		),
	)

	path := c.testFilePath()
	if err := f.Save(path); err != nil {
		return err
	}
	return formatFile(path)
}
