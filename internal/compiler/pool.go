package compiler

import (
	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/dave/jennifer/jen"
)

func (c *Compiler) scratchTypeName() string {
	return codegen.HelperName(c.config.Name, "scratch")
}

func (c *Compiler) scratchPoolName() string {
	return codegen.HelperName(c.config.Name, "scratchPool")
}

// generateScratchType generates the per-call state set storage used by
// the table engine.
func (c *Compiler) generateScratchType(states int) {
	c.file.Type().Id(c.scratchTypeName()).Struct(
		jen.List(jen.Id("current"), jen.Id("next")).Index().Int32(),
		jen.Id("mark").Index().Bool(),
	)
	c.file.Line()

	c.file.Func().Id("new" + codegen.UpperFirst(c.scratchTypeName())).Params().Op("*").Id(c.scratchTypeName()).Block(
		jen.Return(jen.Op("&").Id(c.scratchTypeName()).Values(jen.Dict{
			jen.Id("current"): jen.Make(jen.Index().Int32(), jen.Lit(0), jen.Lit(states)),
			jen.Id("next"):    jen.Make(jen.Index().Int32(), jen.Lit(0), jen.Lit(states)),
			jen.Id("mark"):    jen.Make(jen.Index().Bool(), jen.Lit(states)),
		})),
	)
	c.file.Line()
}

// generateScratchPool generates a sync.Pool for scratch reuse.
func (c *Compiler) generateScratchPool() {
	c.file.Var().Id(c.scratchPoolName()).Op("=").Qual("sync", "Pool").Values(jen.Dict{
		jen.Id("New"): jen.Func().Params().Interface().Block(
			jen.Return(jen.Id("new" + codegen.UpperFirst(c.scratchTypeName())).Call()),
		),
	})
	c.file.Line()
}

// scratchInit generates code to obtain scratch space, from the pool when
// pooling is enabled.
func (c *Compiler) scratchInit() []jen.Code {
	if !c.config.UsePool {
		return []jen.Code{
			jen.Id(codegen.ScratchName).Op(":=").Id("new" + codegen.UpperFirst(c.scratchTypeName())).Call(),
		}
	}
	return []jen.Code{
		// Get scratch from pool
		jen.Id(codegen.ScratchName).Op(":=").Id(c.scratchPoolName()).Dot("Get").Call().Assert(jen.Op("*").Id(c.scratchTypeName())),
		// Defer return to pool; mark is all false again by the time we return
		jen.Defer().Id(c.scratchPoolName()).Dot("Put").Call(jen.Id(codegen.ScratchName)),
	}
}
