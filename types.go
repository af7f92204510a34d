package main

import (
	"go/ast"
	"go/types"
	"path"
	"regexp"
	"strings"

	"github.com/dave/jennifer/jen"
)

// ImportResolver maps the package names used in a file to their import paths.
type ImportResolver struct {
	pkgToPath map[string]string
	aliases   map[string]string // path -> explicit alias
}

// NewImportResolver creates an ImportResolver from a file's imports.
// Aliased imports map their alias; the rest map the name the package is
// conventionally imported under ("gopkg.in/yaml.v3" -> "yaml").
func NewImportResolver(file *ast.File) *ImportResolver {
	resolver := &ImportResolver{
		pkgToPath: make(map[string]string),
		aliases:   make(map[string]string),
	}
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		if imp.Name != nil {
			switch imp.Name.Name {
			case "_", ".":
				continue
			}
			resolver.pkgToPath[imp.Name.Name] = importPath
			resolver.aliases[importPath] = imp.Name.Name
			continue
		}

		resolver.pkgToPath[guessPackageName(importPath)] = importPath
	}
	return resolver
}

// Resolve returns the import path for a package name used in the file.
func (r *ImportResolver) Resolve(pkgName string) (string, bool) {
	importPath, ok := r.pkgToPath[pkgName]
	return importPath, ok
}

// Register tells the output file how each import of the source file is
// named so qualified references render exactly as they were written.
func (r *ImportResolver) Register(buf *jen.File) {
	for name, importPath := range r.pkgToPath {
		if alias, ok := r.aliases[importPath]; ok {
			buf.ImportAlias(importPath, alias)
			continue
		}
		buf.ImportName(importPath, name)
	}
}

var majorVersionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// guessPackageName follows the usual naming conventions: major version
// elements are dropped, gopkg.in ".vN" suffixes are trimmed and "go-"
// prefixes or "-go" suffixes are removed.
func guessPackageName(importPath string) string {
	base := path.Base(importPath)
	if majorVersionSuffix.MatchString(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	if i := strings.Index(base, ".v"); i > 0 && strings.HasPrefix(importPath, "gopkg.in/") {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")
	base = strings.TrimSuffix(base, ".go")
	return strings.ReplaceAll(base, "-", "")
}

// astTypeToJenCode converts an AST type expression to jen.Code.
// Selectors on imported packages become qualified references so the output
// file imports them. Expressions without a structured rendering are written
// out verbatim; their imports are added by the final imports pass.
func astTypeToJenCode(expr ast.Expr, resolver *ImportResolver) jen.Code {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name)
	case *ast.StarExpr:
		return jen.Op("*").Add(astTypeToJenCode(t.X, resolver))
	case *ast.ParenExpr:
		return jen.Parens(astTypeToJenCode(t.X, resolver))
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			if importPath, ok := resolver.Resolve(pkg.Name); ok {
				return jen.Qual(importPath, t.Sel.Name)
			}
		}
		return jen.Id(types.ExprString(t))
	case *ast.ArrayType:
		if t.Len == nil {
			return jen.Index().Add(astTypeToJenCode(t.Elt, resolver))
		}
		return jen.Index(jen.Id(types.ExprString(t.Len))).Add(astTypeToJenCode(t.Elt, resolver))
	case *ast.MapType:
		return jen.Map(astTypeToJenCode(t.Key, resolver)).Add(astTypeToJenCode(t.Value, resolver))
	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(astTypeToJenCode(t.Value, resolver))
		case ast.RECV:
			return jen.Op("<-").Chan().Add(astTypeToJenCode(t.Value, resolver))
		default:
			return jen.Chan().Add(astTypeToJenCode(t.Value, resolver))
		}
	case *ast.IndexExpr:
		return jen.Add(astTypeToJenCode(t.X, resolver)).Types(astTypeToJenCode(t.Index, resolver))
	case *ast.IndexListExpr:
		args := make([]jen.Code, 0, len(t.Indices))
		for _, index := range t.Indices {
			args = append(args, astTypeToJenCode(index, resolver))
		}
		return jen.Add(astTypeToJenCode(t.X, resolver)).Types(args...)
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return jen.Interface()
		}
		return jen.Id(types.ExprString(t))
	default:
		return jen.Id(types.ExprString(expr))
	}
}
