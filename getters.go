package main

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// writeGettersAST emits one accessor per named, non-excepted field.
func writeGettersAST(buf *jen.File, decl *StructDecl, c Config) error {
	if err := requireNamedFields(decl, TransformGetters); err != nil {
		return err
	}

	for _, field := range decl.Fields {
		if !field.Accessible() || field.Excepted {
			continue
		}
		writeGetterAST(buf, field, c)
	}
	return nil
}

func writeGetterAST(buf *jen.File, field FieldDecl, c Config) {
	getterName := c.GetterPrefix + toTitle(field.Name)
	fieldAccess := jen.Id(c.ReceiverId).Dot(field.Name)

	if c.GetterStyle == GetterStylePointer {
		buf.Comment(fmt.Sprintf("%s returns a pointer to the %s field of %s", getterName, field.Name, c.StructName))
		buf.Func().Params(c.receiver()).Id(getterName).Params().Op("*").Add(field.Type).Block(
			jen.Return(jen.Op("&").Add(fieldAccess)),
		)
		buf.Line()
		return
	}

	buf.Comment(fmt.Sprintf("%s returns the %s field of %s", getterName, field.Name, c.StructName))
	buf.Func().Params(c.receiver()).Id(getterName).Params().Add(field.Type).Block(
		jen.Return(fieldAccess),
	)
	buf.Line()
}
