package main

import (
	"fmt"
	"go/ast"

	"github.com/dave/jennifer/jen"
)

// optionalTransform returns the replacement declaration for decl: every
// field that is not excepted has its type wrapped in the optional container.
// The invoking directive is dropped from the attributes. isInterface reports
// whether an embedded field type is an interface, which cannot be wrapped.
func optionalTransform(decl *StructDecl, style OptionalStyle, isInterface func(ast.Expr) bool) (*StructDecl, error) {
	if decl.Shape == NoFields {
		return nil, fmt.Errorf("%w: %s has %s, the %s transform needs at least one field",
			ErrUnsupportedShape, decl.Name, decl.Shape, TransformOptional)
	}
	if err := checkTags(decl.Fields); err != nil {
		return nil, err
	}

	out := *decl
	out.Attributes = make([]string, 0, len(decl.Attributes))
	for _, attr := range decl.Attributes {
		if t, ok := directiveOf(attr); ok && t == TransformOptional {
			continue
		}
		out.Attributes = append(out.Attributes, attr)
	}
	// The directive usually follows a blank comment line separating it from
	// the prose; don't leave that separator dangling.
	for n := len(out.Attributes); n > 0 && out.Attributes[n-1] == "//"; n-- {
		out.Attributes = out.Attributes[:n-1]
	}

	out.Fields = make([]FieldDecl, 0, len(decl.Fields))
	for _, field := range decl.Fields {
		if field.Excepted {
			out.Fields = append(out.Fields, field)
			continue
		}
		wrapped, err := wrapField(decl.Name, field, style, isInterface)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, wrapped)
	}
	out.Transforms = TransformSet{}
	for t := range decl.Transforms {
		if t != TransformOptional {
			out.Transforms.Add(t)
		}
	}

	return &out, nil
}

func wrapField(structName string, field FieldDecl, style OptionalStyle, isInterface func(ast.Expr) bool) (FieldDecl, error) {
	if field.Embedded() {
		if style == OptionalStyleOption {
			return field, fmt.Errorf("%w: embedded field %s of %s cannot be wrapped in %s; mark it %q or use the %s style",
				ErrUnsupportedShape, embeddedName(field.Expr), structName, optionTypeName, ExceptMarker, OptionalStylePointer)
		}
		if _, ok := field.Expr.(*ast.StarExpr); ok {
			return field, fmt.Errorf("%w: embedded field %s of %s is already a pointer; mark it %q",
				ErrUnsupportedShape, embeddedName(field.Expr), structName, ExceptMarker)
		}
		if isInterface != nil && isInterface(field.Expr) {
			return field, fmt.Errorf("%w: embedded field %s of %s is an interface and cannot be embedded through a pointer; mark it %q",
				ErrUnsupportedShape, embeddedName(field.Expr), structName, ExceptMarker)
		}
	}

	switch style {
	case OptionalStyleOption:
		field.Expr = &ast.IndexExpr{
			X:     &ast.SelectorExpr{X: ast.NewIdent("helpers"), Sel: ast.NewIdent(optionTypeName)},
			Index: field.Expr,
		}
		field.Type = jen.Qual(helpersPath, optionTypeName).Types(field.Type)
	default:
		field.Expr = &ast.StarExpr{X: field.Expr}
		field.Type = jen.Op("*").Add(field.Type)
	}
	return field, nil
}

// writeStructAST emits decl as a type declaration, attributes first.
func writeStructAST(buf *jen.File, decl *StructDecl, c Config) {
	for _, attr := range decl.Attributes {
		buf.Comment(attr)
	}

	fields := make([]jen.Code, 0, len(decl.Fields))
	for _, field := range decl.Fields {
		for _, doc := range field.Doc {
			fields = append(fields, jen.Comment(doc))
		}

		var stmt *jen.Statement
		if field.Embedded() {
			stmt = jen.Add(field.Type)
		} else {
			stmt = jen.Id(field.Name).Add(field.Type)
		}
		if field.Tags != nil && field.Tags.Len() > 0 {
			tags := make(map[string]string, field.Tags.Len())
			for _, tag := range field.Tags.Tags() {
				tags[tag.Key] = tag.Value()
			}
			stmt.Tag(tags)
		}
		for _, comment := range field.Comment {
			stmt.Comment(comment)
		}
		fields = append(fields, stmt)
	}

	buf.Type().Add(c.declName(decl.Name)).Struct(fields...)
	buf.Line()
}

// embeddedName is the implicit field name of an embedded field.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return "?"
	}
}
