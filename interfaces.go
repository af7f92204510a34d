package main

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// interfaceIndex answers whether an embedded field type names an interface.
// Types declared in the input package are read from its syntax; types from
// other packages are loaded once per import path.
type interfaceIndex struct {
	dir    string
	local  map[string]ast.Expr // type name -> declared type
	loaded map[string]*types.Package
}

func newInterfaceIndex(dir string, files ...*ast.File) *interfaceIndex {
	ix := &interfaceIndex{
		dir:    dir,
		local:  make(map[string]ast.Expr),
		loaded: make(map[string]*types.Package),
	}
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					ix.local[ts.Name.Name] = ts.Type
				}
			}
		}
	}
	return ix
}

// isInterface reports whether expr names an interface type. Types that
// cannot be resolved are reported as not being interfaces.
func (ix *interfaceIndex) isInterface(expr ast.Expr, resolver *ImportResolver) bool {
	return ix.resolve(expr, resolver, make(map[string]bool))
}

func (ix *interfaceIndex) resolve(expr ast.Expr, resolver *ImportResolver, seen map[string]bool) bool {
	switch t := expr.(type) {
	case *ast.InterfaceType:
		return true
	case *ast.ParenExpr:
		return ix.resolve(t.X, resolver, seen)
	case *ast.IndexExpr:
		return ix.resolve(t.X, resolver, seen)
	case *ast.IndexListExpr:
		return ix.resolve(t.X, resolver, seen)
	case *ast.Ident:
		if declared, ok := ix.local[t.Name]; ok {
			if seen[t.Name] {
				return false
			}
			seen[t.Name] = true
			return ix.resolve(declared, resolver, seen)
		}
		obj := types.Universe.Lookup(t.Name)
		return obj != nil && types.IsInterface(obj.Type())
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return false
		}
		importPath, ok := resolver.Resolve(pkg.Name)
		if !ok {
			return false
		}
		loaded := ix.load(importPath)
		if loaded == nil {
			return false
		}
		obj := loaded.Scope().Lookup(t.Sel.Name)
		return obj != nil && types.IsInterface(obj.Type())
	default:
		return false
	}
}

func (ix *interfaceIndex) load(importPath string) *types.Package {
	if pkg, ok := ix.loaded[importPath]; ok {
		return pkg
	}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  ix.dir,
	}
	var loaded *types.Package
	pkgs, err := packages.Load(cfg, importPath)
	if err == nil && len(pkgs) == 1 && len(pkgs[0].Errors) == 0 {
		loaded = pkgs[0].Types
	}
	ix.loaded[importPath] = loaded
	return loaded
}
