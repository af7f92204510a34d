package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

const (
	helpersPath    = "github.com/ecordell/faststruct/helpers"
	optionTypeName = "Option"

	generatedHeader = "Code generated by github.com/ecordell/faststruct. DO NOT EDIT."
	outputSuffix    = "_faststruct.go"
)

// Config carries everything an emitter needs to know about one struct.
type Config struct {
	Options

	ReceiverId        string
	BuilderReceiverId string
	ValueId           string // parameter name of setters and builder methods
	StructName        string
	TypeParams        []TypeParam
}

// newConfig picks the identifiers used in generated signatures. They must
// not shadow a type parameter or an imported package the field types refer
// to, and "_" cannot be used to reach a field.
func newConfig(decl *StructDecl, opts Options, resolver *ImportResolver) Config {
	taken := make(map[string]bool)
	for _, tp := range decl.TypeParams {
		taken[tp.Name] = true
	}
	if resolver != nil {
		for name := range resolver.pkgToPath {
			taken[name] = true
		}
	}

	c := Config{
		Options:    opts,
		StructName: decl.Name,
		TypeParams: decl.TypeParams,
	}
	c.ReceiverId = freeIdent(taken, strings.ToLower(string([]rune(decl.Name)[0])), "recv")
	taken[c.ReceiverId] = true
	c.BuilderReceiverId = freeIdent(taken, "b", "builder")
	taken[c.BuilderReceiverId] = true
	c.ValueId = freeIdent(taken, "value", "v")
	return c
}

// freeIdent returns the first candidate that is a usable identifier and not
// taken, falling back to the last candidate with a numeric suffix.
func freeIdent(taken map[string]bool, candidates ...string) string {
	for _, c := range candidates {
		if token.IsIdentifier(c) && c != "_" && !taken[c] {
			return c
		}
	}
	last := candidates[len(candidates)-1]
	for i := 2; ; i++ {
		if c := fmt.Sprintf("%s%d", last, i); !taken[c] {
			return c
		}
	}
}

// ref returns a reference to the generic type name instantiated with the
// struct's type parameters, e.g. Foo[K, V].
func (c Config) ref(name string) *jen.Statement {
	stmt := jen.Id(name)
	if len(c.TypeParams) == 0 {
		return stmt
	}
	args := make([]jen.Code, 0, len(c.TypeParams))
	for _, tp := range c.TypeParams {
		args = append(args, jen.Id(tp.Name))
	}
	return stmt.Types(args...)
}

// declName returns name followed by the type parameter declarations,
// e.g. Foo[K comparable, V any].
func (c Config) declName(name string) *jen.Statement {
	stmt := jen.Id(name)
	if len(c.TypeParams) == 0 {
		return stmt
	}
	params := make([]jen.Code, 0, len(c.TypeParams))
	for _, tp := range c.TypeParams {
		params = append(params, jen.Id(tp.Name).Add(tp.Constraint))
	}
	return stmt.Types(params...)
}

func (c Config) structRef() *jen.Statement {
	return c.ref(c.StructName)
}

func (c Config) receiver() *jen.Statement {
	return jen.Id(c.ReceiverId).Op("*").Add(c.structRef())
}

func requireNamedFields(decl *StructDecl, t Transform) error {
	if decl.Shape != NamedFields {
		return fmt.Errorf("%w: %s has %s, the %s transform needs named fields",
			ErrUnsupportedShape, decl.Name, decl.Shape, t)
	}
	return nil
}

// Generator applies transforms to struct declarations.
type Generator struct {
	opts       Options
	logger     *log.Logger
	interfaces *interfaceIndex
}

func NewGenerator(opts Options, logger *log.Logger) *Generator {
	return &Generator{opts: opts, logger: logger}
}

// generateForFileAST emits the code for every target found in file into buf.
// The transforms of each struct are applied in the order of Transforms.
func (g *Generator) generateForFileAST(buf *jen.File, file *ast.File, targets []target) error {
	resolver := NewImportResolver(file)
	resolver.Register(buf)
	interfaces := g.interfaces
	if interfaces == nil {
		interfaces = newInterfaceIndex(".", file)
	}

	for _, t := range targets {
		decl, err := parseStructDecl(t.spec, t.doc, resolver)
		if err != nil {
			return err
		}
		decl.Transforms.Add(t.cli...)

		if err := g.generateStruct(buf, decl, resolver, interfaces); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateStruct(buf *jen.File, decl *StructDecl, resolver *ImportResolver, interfaces *interfaceIndex) error {
	c := newConfig(decl, g.opts, resolver)

	if decl.Transforms.Has(TransformOptional) {
		isInterface := func(expr ast.Expr) bool { return interfaces.isInterface(expr, resolver) }
		replaced, err := optionalTransform(decl, g.opts.OptionalStyle, isInterface)
		if err != nil {
			return err
		}
		writeStructAST(buf, replaced, c)
		decl = replaced
		g.logger.Debug("replaced struct", "struct", decl.Name, "style", g.opts.OptionalStyle)
	}

	emitters := []struct {
		transform Transform
		emit      func(*jen.File, *StructDecl, Config) error
	}{
		{TransformGetters, writeGettersAST},
		{TransformSetters, writeSettersAST},
		{TransformBuilder, writeBuilderAST},
	}
	for _, e := range emitters {
		if !decl.Transforms.Has(e.transform) {
			continue
		}
		if err := e.emit(buf, decl, c); err != nil {
			return err
		}
		g.logger.Debug("generated", "struct", decl.Name, "transform", e.transform)
	}
	return nil
}

// sourceFile is a parsed file of the input package.
type sourceFile struct {
	path string
	file *ast.File
}

// parsePackageDir parses the Go files of dir in lexical order. Build
// constraints are ignored on purpose: declarations replaced by the optional
// transform live in files that are excluded from normal builds. Test files
// and generated files are skipped.
func parsePackageDir(fset *token.FileSet, dir string) ([]sourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	files := make([]sourceFile, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(dir, name)
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		if ast.IsGenerated(f) {
			continue
		}
		files = append(files, sourceFile{path: path, file: f})
	}
	return files, nil
}

// hasBuildConstraint reports whether file carries a //go:build line.
func hasBuildConstraint(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() > file.Package {
			break
		}
		for _, c := range cg.List {
			if constraint.IsGoBuild(c.Text) {
				return true
			}
		}
	}
	return false
}

// output is one generated file being assembled.
type output struct {
	buf     *jen.File
	structs int
}

// Run executes a single job: it parses the job's package directory, emits
// code for every selected struct and writes the output files. Nothing is
// written when any struct fails.
func Run(job Job, logger *log.Logger) error {
	opts, err := job.Options()
	if err != nil {
		return err
	}
	transforms, err := job.ParsedTransforms()
	if err != nil {
		return err
	}

	fset := token.NewFileSet()
	files, err := parsePackageDir(fset, job.Dir)
	if err != nil {
		return err
	}

	structFilter := make(map[string]struct{}, len(job.Structs))
	for _, name := range job.Structs {
		structFilter[name] = struct{}{}
	}

	gen := NewGenerator(opts, logger)
	astFiles := make([]*ast.File, 0, len(files))
	for _, sf := range files {
		astFiles = append(astFiles, sf.file)
	}
	gen.interfaces = newInterfaceIndex(job.Dir, astFiles...)
	outputs := make(map[string]*output)
	seen := make(map[string]struct{})

	for _, sf := range files {
		targets := findTargets(sf.file, structFilter, transforms)
		if len(targets) == 0 {
			continue
		}

		outPath := job.Output
		if outPath == "" {
			outPath = strings.TrimSuffix(sf.path, ".go") + outputSuffix
		}
		out, ok := outputs[outPath]
		if !ok {
			pkgName := job.Package
			if pkgName == "" {
				pkgName = sf.file.Name.Name
			}
			out = &output{buf: newOutputFile(outPath, pkgName)}
			outputs[outPath] = out
		}

		if err := gen.generateForFileAST(out.buf, sf.file, targets); err != nil {
			return fmt.Errorf("%s: %w", sf.path, err)
		}
		out.structs += len(targets)

		for _, t := range targets {
			seen[t.spec.Name.Name] = struct{}{}
			if replacesDeclaration(t) && !hasBuildConstraint(sf.file) {
				logger.Warn("optional struct source is compiled into the package; guard its file with a build constraint",
					"struct", t.spec.Name.Name, "file", sf.path)
			}
		}
	}

	var missing []string
	for _, name := range job.Structs {
		if _, ok := seen[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s in %s", ErrNoStructs, strings.Join(missing, ", "), job.Dir)
	}
	if len(outputs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoStructs, job.Dir)
	}

	rendered := make(map[string][]byte, len(outputs))
	for outPath, out := range outputs {
		src, err := renderFile(out.buf, outPath)
		if err != nil {
			return err
		}
		rendered[outPath] = src
	}

	paths := make([]string, 0, len(rendered))
	for outPath := range rendered {
		paths = append(paths, outPath)
	}
	sort.Strings(paths)
	for _, outPath := range paths {
		if err := os.WriteFile(outPath, rendered[outPath], 0o644); err != nil {
			return fmt.Errorf("error writing file %s: %w", outPath, err)
		}
		logger.Info("generated", "file", outPath, "structs", outputs[outPath].structs)
	}
	return nil
}

func replacesDeclaration(t target) bool {
	if directiveTransforms(t.doc).Has(TransformOptional) {
		return true
	}
	for _, tr := range t.cli {
		if tr == TransformOptional {
			return true
		}
	}
	return false
}

func newOutputFile(outPath, pkgName string) *jen.File {
	pkgPath, err := filepath.Abs(filepath.Dir(outPath))
	if err != nil {
		pkgPath = filepath.Dir(outPath)
	}
	buf := jen.NewFilePathName(filepath.ToSlash(pkgPath), pkgName)
	buf.HeaderComment(generatedHeader)
	return buf
}

// renderFile renders buf and runs the result through goimports, which adds
// imports for type expressions that were copied verbatim and formats the file.
func renderFile(buf *jen.File, outPath string) ([]byte, error) {
	var src bytes.Buffer
	if err := buf.Render(&src); err != nil {
		return nil, fmt.Errorf("error rendering %s: %w", outPath, err)
	}

	formatted, err := imports.Process(outPath, src.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("error formatting %s: %w", outPath, err)
	}
	return formatted, nil
}

func unexport(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// toTitle capitalizes the first letter of a string
func toTitle(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
