package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	src := `package p

// Foo has an optional Baz.
//
//faststruct:optional
type Foo struct {
	Bar bool ` + "`faststruct:\"except\"`" + `
	Baz uint
}
`
	out := mustGenerate(t, src, defaultOptions(t), nil)

	gd, _, st := structType(t, out, "Foo")
	require.NotNil(t, gd.Doc)
	require.Len(t, gd.Doc.List, 1)
	assert.Equal(t, "// Foo has an optional Baz.", gd.Doc.List[0].Text)
	assert.Equal(t, []string{"Bar bool", "Baz *uint"}, fieldList(st))
	assert.NotContains(t, out, MarkerTagKey+`:"`)

	// Absent values for every wrapped field; excepted fields are supplied directly.
	usage := `package p

var absent = Foo{Bar: true}
var explicit = Foo{Bar: false, Baz: nil}
`
	require.NoError(t, typeCheck(out, usage))
}

func TestOptionalAttributes(t *testing.T) {
	src := `package p

// Patch is a partial update.
//
//faststruct:optional
//nolint:unused
type Patch struct {
	// ID selects the record.
	ID   string ` + "`faststruct:\"except\" json:\"id\"`" + `
	Name string ` + "`json:\"name,omitempty\" db:\"name\"`" + ` // new name
	Tags []string
}
`
	out := mustGenerate(t, src, defaultOptions(t), nil)

	gd, _, st := structType(t, out, "Patch")
	require.NotNil(t, gd.Doc)
	var doc []string
	for _, c := range gd.Doc.List {
		doc = append(doc, c.Text)
	}
	assert.Equal(t, []string{"// Patch is a partial update.", "//", "//nolint:unused"}, doc)
	assert.NotContains(t, out, TransformOptional.Directive())

	assert.Equal(t, []string{"ID string", "Name *string", "Tags *[]string"}, fieldList(st))

	id := st.Fields.List[0]
	require.NotNil(t, id.Doc)
	assert.Equal(t, "// ID selects the record.", id.Doc.List[0].Text)
	idTag := fieldTag(t, id)
	assert.Equal(t, "id", idTag.Get("json"))
	_, ok := idTag.Lookup(MarkerTagKey)
	assert.False(t, ok)

	name := st.Fields.List[1]
	nameTag := fieldTag(t, name)
	assert.Equal(t, "name,omitempty", nameTag.Get("json"))
	assert.Equal(t, "name", nameTag.Get("db"))
	require.NotNil(t, name.Comment)
	assert.Equal(t, "// new name", name.Comment.List[0].Text)

	assert.Nil(t, st.Fields.List[2].Tag)
	require.NoError(t, typeCheck(out))

	// The directive is recognized with surrounding spaces, and stripped by
	// the same rule.
	spaced := "package p\n\n//faststruct: optional \n//nolint:unused\ntype Foo struct{ Bar int }\n"
	out = mustGenerate(t, spaced, defaultOptions(t), nil)
	gd, _, st = structType(t, out, "Foo")
	assert.Equal(t, []string{"Bar *int"}, fieldList(st))
	require.NotNil(t, gd.Doc)
	require.Len(t, gd.Doc.List, 1)
	assert.Equal(t, "//nolint:unused", gd.Doc.List[0].Text)
	assert.NotContains(t, out, "optional")
}

func TestOptionalKeepsOtherDirectives(t *testing.T) {
	src := `package p

//faststruct:optional
//faststruct:getters
type Foo struct {
	bar string
	baz int16 ` + "`faststruct:\"except\"`" + `
}
`
	out := mustGenerate(t, src, defaultOptions(t), nil)

	gd, _, _ := structType(t, out, "Foo")
	require.NotNil(t, gd.Doc)
	assert.Equal(t, "//faststruct:getters", gd.Doc.List[0].Text)

	// Accessors are generated for the replacement declaration.
	assert.Equal(t, map[string]string{
		"*Foo.Bar": "func() *string",
	}, methodSignatures(t, out))
	require.NoError(t, typeCheck(out))
}

func TestOptionalOptionStyle(t *testing.T) {
	src := `package p

//faststruct:optional
type Foo struct {
	Bar bool ` + "`faststruct:\"except\"`" + `
	Baz uint
}
`
	opts := defaultOptions(t)
	opts.OptionalStyle = OptionalStyleOption
	out := mustGenerate(t, src, opts, nil)

	_, _, st := structType(t, out, "Foo")
	assert.Equal(t, []string{"Bar bool", "Baz helpers.Option[uint]"}, fieldList(st))
	assert.Contains(t, out, `"`+helpersPath+`"`)
}

func TestOptionalEmbeddedFields(t *testing.T) {
	base := `package p

type Left struct{ L int }
type Right struct{ R int }
type Middle struct{ M int }
`
	src := `package p

//faststruct:optional
type Pair struct {
	Left
	Right ` + "`faststruct:\"except\"`" + `
	Middle
}
`
	out := mustGenerate(t, src, defaultOptions(t), nil)

	_, _, st := structType(t, out, "Pair")
	assert.Equal(t, []string{"*Left", "Right", "*Middle"}, fieldList(st))

	usage := `package p

var p = Pair{Right: Right{R: 1}}
`
	require.NoError(t, typeCheck(base, out, usage))
}

func TestOptionalEmbeddedErrors(t *testing.T) {
	t.Run("already a pointer", func(t *testing.T) {
		src := "package p\ntype Left struct{}\n//faststruct:optional\ntype Pair struct{ *Left }\n"
		_, err := generateSource(t, src, defaultOptions(t), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
		assert.Contains(t, err.Error(), "Left")
	})

	t.Run("option style", func(t *testing.T) {
		opts := defaultOptions(t)
		opts.OptionalStyle = OptionalStyleOption
		src := "package p\ntype Left struct{}\n//faststruct:optional\ntype Pair struct{ Left }\n"
		_, err := generateSource(t, src, opts, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
	})

	t.Run("imported interface", func(t *testing.T) {
		src := "package p\nimport \"io\"\n//faststruct:optional\ntype Stream struct{ io.Reader; n int }\n"
		_, err := generateSource(t, src, defaultOptions(t), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
		assert.Contains(t, err.Error(), "Reader")
	})

	t.Run("local interface", func(t *testing.T) {
		src := "package p\ntype Named interface{ Name() string }\ntype Alias = Named\n//faststruct:optional\ntype Pair struct{ Alias }\n"
		_, err := generateSource(t, src, defaultOptions(t), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
		assert.Contains(t, err.Error(), "interface")
	})

	t.Run("predeclared error", func(t *testing.T) {
		src := "package p\n//faststruct:optional\ntype Failure struct{ error }\n"
		_, err := generateSource(t, src, defaultOptions(t), nil)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
	})

	t.Run("excepted interface passes through", func(t *testing.T) {
		src := "package p\nimport \"io\"\n//faststruct:optional\ntype Stream struct{ io.Reader `faststruct:\"except\"`; n int }\n"
		out, err := generateSource(t, src, defaultOptions(t), nil)
		require.NoError(t, err)
		_, _, st := structType(t, out, "Stream")
		assert.Equal(t, []string{"io.Reader", "n *int"}, fieldList(st))
		require.NoError(t, typeCheck(out))
	})

	t.Run("excepted pointer passes through", func(t *testing.T) {
		src := "package p\ntype Left struct{}\n//faststruct:optional\ntype Pair struct{ *Left `faststruct:\"except\"` }\n"
		out, err := generateSource(t, src, defaultOptions(t), nil)
		require.NoError(t, err)
		_, _, st := structType(t, out, "Pair")
		assert.Equal(t, []string{"*Left"}, fieldList(st))
	})
}

func TestOptionalMalformedTag(t *testing.T) {
	src := "package p\n//faststruct:optional\ntype Foo struct{ a int `json:name` }\n"
	_, err := generateSource(t, src, defaultOptions(t), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedField)
}

func TestOptionalNoFields(t *testing.T) {
	src := "package p\n//faststruct:optional\ntype Empty struct{}\n"
	out, err := generateSource(t, src, defaultOptions(t), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedShape)
	assert.Contains(t, err.Error(), "Empty has no fields")
	assert.Empty(t, out)
}

func TestOptionalGeneric(t *testing.T) {
	src := `package p

type Number interface{ ~int | ~float64 }

//faststruct:optional
type Range[T Number, L any] struct {
	lo, hi T
	label  L
}
`
	out := mustGenerate(t, src, defaultOptions(t), nil)

	_, ts, st := structType(t, out, "Range")
	require.NotNil(t, ts.TypeParams)
	assert.Len(t, ts.TypeParams.List, 2)
	assert.Equal(t, []string{"lo *T", "hi *T", "label *L"}, fieldList(st))

	number := "package p\ntype Number interface{ ~int | ~float64 }\n"
	require.NoError(t, typeCheck(number, out))
}

func TestOptionalCrossPackageTypes(t *testing.T) {
	src := `package p

import (
	stdsql "database/sql"
	"time"
)

//faststruct:optional
type Event struct {
	At       time.Time
	Nullable stdsql.NullString
	Chans    chan<- time.Duration
	Fixed    [4]byte
}
`
	out := mustGenerate(t, src, defaultOptions(t), nil)

	_, _, st := structType(t, out, "Event")
	assert.Equal(t, []string{
		"At *time.Time",
		"Nullable *stdsql.NullString",
		"Chans *chan<- time.Duration",
		"Fixed *[4]byte",
	}, fieldList(st))
	assert.Contains(t, out, `stdsql "database/sql"`)
	assert.True(t, strings.Contains(out, `"time"`))
}
