package main

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// writeSettersAST emits one mutator per named, non-excepted field. Methods
// cannot declare type parameters, so the mutator takes the field type and
// relies on assignability at the call site.
func writeSettersAST(buf *jen.File, decl *StructDecl, c Config) error {
	if err := requireNamedFields(decl, TransformSetters); err != nil {
		return err
	}

	for _, field := range decl.Fields {
		if !field.Accessible() || field.Excepted {
			continue
		}
		writeSetterAST(buf, field, c)
	}
	return nil
}

func writeSetterAST(buf *jen.File, field FieldDecl, c Config) {
	setterName := c.SetterPrefix + toTitle(field.Name)
	buf.Comment(fmt.Sprintf("%s overwrites the %s field of %s", setterName, field.Name, c.StructName))
	buf.Func().Params(c.receiver()).Id(setterName).Params(
		jen.Id(c.ValueId).Add(field.Type),
	).Block(
		jen.Id(c.ReceiverId).Dot(field.Name).Op("=").Id(c.ValueId),
	)
	buf.Line()
}
