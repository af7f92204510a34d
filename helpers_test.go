package main

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func defaultOptions(t *testing.T) Options {
	t.Helper()
	opts, err := NewJob().Options()
	require.NoError(t, err)
	return opts
}

// generateSource runs the generator over a single source file and returns
// the rendered output. Structs listed in names receive transforms.
func generateSource(t *testing.T, src string, opts Options, names []string, transforms ...Transform) (string, error) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	require.NoError(t, err)

	filter := make(map[string]struct{}, len(names))
	for _, name := range names {
		filter[name] = struct{}{}
	}

	outPath := filepath.Join(t.TempDir(), "input"+outputSuffix)
	buf := newOutputFile(outPath, file.Name.Name)
	gen := NewGenerator(opts, testLogger())
	if err := gen.generateForFileAST(buf, file, findTargets(file, filter, transforms)); err != nil {
		return "", err
	}
	out, err := renderFile(buf, outPath)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// mustGenerate is generateSource for inputs that are expected to succeed.
func mustGenerate(t *testing.T, src string, opts Options, names []string, transforms ...Transform) string {
	t.Helper()
	out, err := generateSource(t, src, opts, names, transforms...)
	require.NoError(t, err)
	return out
}

// typeCheck type-checks the given sources as one package.
func typeCheck(srcs ...string) error {
	fset := token.NewFileSet()
	files := make([]*ast.File, 0, len(srcs))
	for i, src := range srcs {
		f, err := parser.ParseFile(fset, fmt.Sprintf("src%d.go", i), src, 0)
		if err != nil {
			return err
		}
		files = append(files, f)
	}
	conf := types.Config{Importer: &generatedImporter{fallback: importer.Default()}}
	_, err := conf.Check(files[0].Name.Name, fset, files, nil)
	return err
}

// generatedImporter resolves the packages generated code refers to without a
// module cache: the helpers package is checked from its sources in this
// repository, creasty/defaults from the signatures the builder calls.
type generatedImporter struct {
	fallback types.Importer
	cache    map[string]*types.Package
}

const defaultsStub = `package defaults

func Set(ptr interface{}) error { return nil }

func MustSet(ptr interface{}) {}
`

func (i *generatedImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := i.cache[path]; ok {
		return pkg, nil
	}

	var pkg *types.Package
	var err error
	switch path {
	case helpersPath:
		pkg, err = checkDir("helpers", path)
	case defaultsPath:
		pkg, err = checkSource(path, defaultsStub)
	default:
		return i.fallback.Import(path)
	}
	if err != nil {
		return nil, err
	}
	if i.cache == nil {
		i.cache = make(map[string]*types.Package)
	}
	i.cache[path] = pkg
	return pkg, nil
}

func checkDir(dir, path string) (*types.Package, error) {
	fset := token.NewFileSet()
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}
	var files []*ast.File
	for _, p := range paths {
		if strings.HasSuffix(p, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, p, nil, 0)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	conf := types.Config{Importer: importer.Default()}
	return conf.Check(path, fset, files, nil)
}

func checkSource(path, src string) (*types.Package, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Base(path)+".go", src, 0)
	if err != nil {
		return nil, err
	}
	conf := types.Config{Importer: importer.Default()}
	return conf.Check(path, fset, []*ast.File{f}, nil)
}

func parseGenerated(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	require.NoError(t, err, src)
	return f
}

// methodSignatures maps "Recv.Method" (and plain function names) to their
// signature, e.g. "*Foo.Bar" -> "func() string".
func methodSignatures(t *testing.T, src string) map[string]string {
	t.Helper()
	sigs := make(map[string]string)
	for _, decl := range parseGenerated(t, src).Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		key := fd.Name.Name
		if fd.Recv != nil {
			key = types.ExprString(fd.Recv.List[0].Type) + "." + key
		}
		sigs[key] = types.ExprString(fd.Type)
	}
	return sigs
}

// structType returns the generated declaration of name.
func structType(t *testing.T, src, name string) (*ast.GenDecl, *ast.TypeSpec, *ast.StructType) {
	t.Helper()
	for _, decl := range parseGenerated(t, src).Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Name.Name != name {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			require.True(t, ok, "%s is not a struct", name)
			return gd, ts, st
		}
	}
	t.Fatalf("type %s not found in:\n%s", name, src)
	return nil, nil, nil
}

// fieldList renders each field as "name type" (or just "type" when embedded).
func fieldList(st *ast.StructType) []string {
	var fields []string
	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)
		if len(f.Names) == 0 {
			fields = append(fields, typ)
			continue
		}
		for _, n := range f.Names {
			fields = append(fields, n.Name+" "+typ)
		}
	}
	return fields
}

func fieldTag(t *testing.T, f *ast.Field) reflect.StructTag {
	t.Helper()
	if f.Tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(f.Tag.Value)
	require.NoError(t, err)
	return reflect.StructTag(raw)
}
