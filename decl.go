package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/fatih/structtag"
)

const (
	// MarkerTagKey is the struct tag key read by faststruct.
	MarkerTagKey = "faststruct"

	// ExceptMarker excludes a field from every transform:
	//
	//	Secret string `faststruct:"except"`
	ExceptMarker = "except"

	// DirectivePrefix starts a doc comment line requesting a transform,
	// e.g. //faststruct:getters.
	DirectivePrefix = "//faststruct:"

	// DefaultTagKey is the creasty/defaults tag; builder fields carrying it
	// are not required.
	DefaultTagKey = "default"
)

// Transform names one of the generators.
type Transform string

const (
	TransformGetters  Transform = "getters"
	TransformSetters  Transform = "setters"
	TransformOptional Transform = "optional"
	TransformBuilder  Transform = "builder"
)

// Transforms lists every transform in the order they are applied to a struct.
// The optional transform replaces the declaration, so it runs first and the
// derive transforms see the replacement.
var Transforms = []Transform{TransformOptional, TransformGetters, TransformSetters, TransformBuilder}

// ParseTransform validates a transform name.
func ParseTransform(s string) (Transform, error) {
	t := Transform(strings.TrimSpace(s))
	for _, known := range Transforms {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTransform, s)
}

// Directive returns the doc comment line that requests t.
func (t Transform) Directive() string {
	return DirectivePrefix + string(t)
}

// TransformSet is the set of transforms requested for one struct.
type TransformSet map[Transform]struct{}

func (s TransformSet) Add(ts ...Transform) {
	for _, t := range ts {
		s[t] = struct{}{}
	}
}

func (s TransformSet) Has(t Transform) bool {
	_, ok := s[t]
	return ok
}

// Shape classifies the field list of a struct.
type Shape int

const (
	NoFields Shape = iota
	NamedFields
	UnnamedFields
)

func (s Shape) String() string {
	switch s {
	case NoFields:
		return "no fields"
	case NamedFields:
		return "named fields"
	case UnnamedFields:
		return "embedded fields only"
	default:
		return "unknown shape"
	}
}

// TypeParam is one type parameter of a generic struct.
type TypeParam struct {
	Name       string
	Constraint jen.Code
}

// FieldDecl is a single field of a parsed struct. Fields declared together
// (a, b int) are split into one FieldDecl per name.
type FieldDecl struct {
	Name     string // empty for embedded fields
	Expr     ast.Expr
	Type     jen.Code
	Tags     *structtag.Tags // marker key removed
	TagErr   error           // set when the tag could not be parsed; Tags is then empty
	Doc      []string
	Comment  []string
	Excepted bool
}

// Embedded reports whether the field has no name of its own.
func (f FieldDecl) Embedded() bool {
	return f.Name == ""
}

// Accessible reports whether a method can address the field by name.
func (f FieldDecl) Accessible() bool {
	return f.Name != "" && f.Name != "_"
}

// StructDecl is the parsed form of a struct declaration that every
// transform consumes.
type StructDecl struct {
	Name       string
	Exported   bool
	TypeParams []TypeParam
	Attributes []string
	Transforms TransformSet
	Fields     []FieldDecl
	Shape      Shape
}

// parseStructDecl builds a StructDecl from a type spec. doc is the comment
// group attached to the declaration.
func parseStructDecl(ts *ast.TypeSpec, doc *ast.CommentGroup, resolver *ImportResolver) (*StructDecl, error) {
	if ts.Assign.IsValid() {
		return nil, fmt.Errorf("%w: %s is a type alias", ErrUnsupportedShape, ts.Name.Name)
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrUnsupportedShape, ts.Name.Name)
	}

	decl := &StructDecl{
		Name:       ts.Name.Name,
		Exported:   ts.Name.IsExported(),
		Attributes: commentLines(doc),
		Transforms: directiveTransforms(doc),
	}

	if ts.TypeParams != nil {
		for _, param := range ts.TypeParams.List {
			for _, name := range param.Names {
				decl.TypeParams = append(decl.TypeParams, TypeParam{
					Name:       name.Name,
					Constraint: astTypeToJenCode(param.Type, resolver),
				})
			}
		}
	}

	if st.Fields != nil {
		for _, field := range st.Fields.List {
			fields, err := parseField(decl.Name, field, resolver)
			if err != nil {
				return nil, err
			}
			decl.Fields = append(decl.Fields, fields...)
		}
	}
	decl.Shape = shapeOf(decl.Fields)

	return decl, nil
}

func parseField(structName string, field *ast.Field, resolver *ImportResolver) ([]FieldDecl, error) {
	if field.Type == nil {
		return nil, fmt.Errorf("%w: field without a type in %s", ErrMalformedField, structName)
	}

	// An unparseable tag only matters to transforms that re-emit or read
	// tags, so it is recorded rather than returned here.
	tags, tagErr := parseTags(field)
	var excepted bool
	if tagErr != nil {
		tags = &structtag.Tags{}
		tagErr = fmt.Errorf("%w: %s: %v", ErrMalformedField, structName, tagErr)
		excepted = isExceptedRaw(field.Tag)
	} else {
		excepted = isExcepted(tags)
		tags.Delete(MarkerTagKey)
	}

	base := FieldDecl{
		Expr:     field.Type,
		Type:     astTypeToJenCode(field.Type, resolver),
		Tags:     tags,
		TagErr:   tagErr,
		Doc:      commentLines(field.Doc),
		Comment:  commentLines(field.Comment),
		Excepted: excepted,
	}

	if len(field.Names) == 0 {
		return []FieldDecl{base}, nil
	}

	fields := make([]FieldDecl, 0, len(field.Names))
	for _, name := range field.Names {
		f := base
		f.Name = name.Name
		fields = append(fields, f)
	}
	return fields, nil
}

// parseTags parses a field tag. Fields without a tag get an empty set.
func parseTags(field *ast.Field) (*structtag.Tags, error) {
	if field.Tag == nil {
		return &structtag.Tags{}, nil
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return nil, err
	}
	tags, err := structtag.Parse(raw)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		return &structtag.Tags{}, nil
	}
	return tags, nil
}

// isExcepted reports whether the faststruct tag names the except marker,
// either as its value or as one of its options.
func isExcepted(tags *structtag.Tags) bool {
	tag, err := tags.Get(MarkerTagKey)
	if err != nil {
		return false
	}
	if tag.Name == ExceptMarker {
		return true
	}
	for _, opt := range tag.Options {
		if opt == ExceptMarker {
			return true
		}
	}
	return false
}

// isExceptedRaw reads the marker from a tag structtag rejected, using the
// lenient lookup of reflect.StructTag.
func isExceptedRaw(lit *ast.BasicLit) bool {
	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return false
	}
	value, ok := reflect.StructTag(raw).Lookup(MarkerTagKey)
	if !ok {
		return false
	}
	for _, part := range strings.Split(value, ",") {
		if part == ExceptMarker {
			return true
		}
	}
	return false
}

// checkTags returns the first tag error among fields.
func checkTags(fields []FieldDecl) error {
	for _, f := range fields {
		if f.TagErr != nil {
			return f.TagErr
		}
	}
	return nil
}

func shapeOf(fields []FieldDecl) Shape {
	if len(fields) == 0 {
		return NoFields
	}
	for _, f := range fields {
		if !f.Embedded() {
			return NamedFields
		}
	}
	return UnnamedFields
}

func commentLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}
	lines := make([]string, 0, len(cg.List))
	for _, c := range cg.List {
		lines = append(lines, c.Text)
	}
	return lines
}

func directiveTransforms(doc *ast.CommentGroup) TransformSet {
	set := TransformSet{}
	if doc == nil {
		return set
	}
	for _, c := range doc.List {
		if t, ok := directiveOf(c.Text); ok {
			set.Add(t)
		}
	}
	return set
}

// directiveOf reports the transform a doc comment line requests, if any.
func directiveOf(line string) (Transform, bool) {
	name, ok := strings.CutPrefix(line, DirectivePrefix)
	if !ok {
		return "", false
	}
	t, err := ParseTransform(name)
	if err != nil {
		return "", false
	}
	return t, true
}

// target is a struct selected for generation together with its doc comment.
type target struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
	cli  []Transform
}

// findTargets returns the type specs in file that carry a faststruct
// directive or whose name is listed in names. Listed structs receive the
// transforms given on the command line.
func findTargets(file *ast.File, names map[string]struct{}, transforms []Transform) []target {
	found := make([]target, 0)
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name == nil {
				continue
			}

			doc := ts.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}

			t := target{spec: ts, doc: doc}
			if _, ok := names[ts.Name.Name]; ok {
				t.cli = transforms
			}
			if len(t.cli) > 0 || len(directiveTransforms(doc)) > 0 {
				found = append(found, t)
			}
		}
	}

	return found
}
