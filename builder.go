package main

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

const defaultsPath = "github.com/creasty/defaults"

// writeBuilderAST emits a builder type for decl. Each named, non-excepted
// field gets a chainable method; Build reports the required fields that were
// never set. Fields with a `default` tag are optional; the constructor fills
// them in with creasty/defaults.
func writeBuilderAST(buf *jen.File, decl *StructDecl, c Config) error {
	if err := requireNamedFields(decl, TransformBuilder); err != nil {
		return err
	}
	if err := checkTags(decl.Fields); err != nil {
		return err
	}

	builderName := decl.Name + "Builder"
	ctorName := "New" + toTitle(builderName)
	if !decl.Exported {
		builderName = unexport(builderName)
		ctorName = "new" + toTitle(builderName)
	}
	builderRef := func() *jen.Statement { return c.ref(builderName) }
	b := c.BuilderReceiverId
	receiver := func() *jen.Statement { return jen.Id(b).Op("*").Add(builderRef()) }

	var required []jen.Code
	hasDefaults := false
	for _, field := range decl.Fields {
		_, err := field.Tags.Get(DefaultTagKey)
		hasDefault := err == nil
		hasDefaults = hasDefaults || hasDefault
		if field.Accessible() && !field.Excepted && !hasDefault {
			required = append(required, jen.Lit(field.Name))
		}
	}

	buf.Comment(fmt.Sprintf("%s assembles a %s one field at a time", builderName, c.StructName))
	buf.Type().Add(c.declName(builderName)).Struct(
		jen.Id("target").Add(c.structRef()),
		jen.Id("set").Map(jen.String()).Bool(),
	)
	buf.Line()

	// Defaults are filled in before any field is set, so a value set through
	// the builder is kept even when it is the zero value.
	newBuilder := jen.Op("&").Add(builderRef()).Values(jen.Dict{
		jen.Id("set"): jen.Map(jen.String()).Bool().Values(),
	})
	if hasDefaults {
		buf.Comment(fmt.Sprintf("%s returns a %s whose %s starts from its default values", ctorName, builderName, c.StructName))
		buf.Func().Add(c.declName(ctorName)).Params().Op("*").Add(builderRef()).Block(
			jen.Id(b).Op(":=").Add(newBuilder),
			jen.Qual(defaultsPath, "MustSet").Call(jen.Op("&").Id(b).Dot("target")),
			jen.Return(jen.Id(b)),
		)
	} else {
		buf.Comment(fmt.Sprintf("%s returns an empty %s", ctorName, builderName))
		buf.Func().Add(c.declName(ctorName)).Params().Op("*").Add(builderRef()).Block(
			jen.Return(newBuilder),
		)
	}
	buf.Line()

	for _, field := range decl.Fields {
		if !field.Accessible() || field.Excepted {
			continue
		}
		methodName := toTitle(field.Name)
		buf.Comment(fmt.Sprintf("%s sets the %s field of the %s being built", methodName, field.Name, c.StructName))
		buf.Func().Params(receiver()).Id(methodName).Params(
			jen.Id(c.ValueId).Add(field.Type),
		).Op("*").Add(builderRef()).Block(
			jen.Id(b).Dot("target").Dot(field.Name).Op("=").Id(c.ValueId),
			jen.Id(b).Dot("set").Index(jen.Lit(field.Name)).Op("=").True(),
			jen.Return(jen.Id(b)),
		)
		buf.Line()
	}

	buf.Comment(fmt.Sprintf("Build returns the assembled %s, or an error naming the required fields that were never set", c.StructName))
	buf.Func().Params(receiver()).Id("Build").Params().Params(
		jen.Op("*").Add(c.structRef()), jen.Error(),
	).BlockFunc(func(grp *jen.Group) {
		if len(required) > 0 {
			grp.Var().Id("missing").Index().String()
			grp.For(jen.List(jen.Id("_"), jen.Id("name")).Op(":=").Range().Index().String().Values(required...)).Block(
				jen.If(jen.Op("!").Id(b).Dot("set").Index(jen.Id("name"))).Block(
					jen.Id("missing").Op("=").Append(jen.Id("missing"), jen.Id("name")),
				),
			)
			grp.If(jen.Len(jen.Id("missing")).Op(">").Lit(0)).Block(
				jen.Return(jen.Nil(), jen.Op("&").Qual(helpersPath, "MissingFieldsError").Values(jen.Dict{
					jen.Id("Struct"): jen.Lit(decl.Name),
					jen.Id("Fields"): jen.Id("missing"),
				})),
			)
		}
		grp.Id("target").Op(":=").Id(b).Dot("target")
		grp.Return(jen.Op("&").Id("target"), jen.Nil())
	})
	buf.Line()

	return nil
}
