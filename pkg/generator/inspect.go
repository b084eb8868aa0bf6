package generator

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/qsgen/pkg/logger"
	"github.com/dmitrymomot/qsgen/pkg/qs"
)

// Package is the result of scanning a package directory.
type Package struct {
	Name  string
	Dir   string
	Types []Type
}

// TypeNames returns the selected type names in source order.
func (p *Package) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Name)
	}
	return names
}

// Type is a struct type selected for generation.
type Type struct {
	Name       string
	TypeParams []string
	Annotated  bool
	Pos        token.Position
}

// inspector holds the parsed files of one package while it is checked.
type inspector struct {
	fset    *token.FileSet
	specs   map[string]*ast.TypeSpec
	methods map[string]map[string]token.Pos
}

// Inspect parses the non-test Go files of dir, skipping the generated output
// file, and returns the types selected by the directive or Config.Types.
// All problems found are returned together.
func (g *Generator) Inspect(ctx context.Context, dir string) (*Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, fset, err := g.parseDir(dir)
	if err != nil {
		return nil, err
	}

	pkg := &Package{Name: files[0].Name.Name, Dir: dir}
	for _, f := range files[1:] {
		if f.Name.Name != pkg.Name {
			return nil, fmt.Errorf("%w: found packages %s and %s in %s", ErrParse, pkg.Name, f.Name.Name, dir)
		}
	}

	in := &inspector{
		fset:    fset,
		specs:   make(map[string]*ast.TypeSpec),
		methods: collectMethods(files),
	}
	for _, f := range files {
		for _, decl := range f.Decls {
			if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.TYPE {
				for _, spec := range gd.Specs {
					ts := spec.(*ast.TypeSpec)
					in.specs[ts.Name.Name] = ts
				}
			}
		}
	}

	requested := make(map[string]bool, len(g.cfg.Types))
	for _, name := range g.cfg.Types {
		requested[name] = true
	}

	var errs []error
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				annotated := hasDirective(ts.Doc) || (len(gd.Specs) == 1 && hasDirective(gd.Doc))
				if !annotated && !requested[ts.Name.Name] {
					continue
				}

				pos := fset.Position(ts.Pos())
				if typeErrs := in.checkType(ts); len(typeErrs) > 0 {
					errs = append(errs, typeErrs...)
					continue
				}

				pkg.Types = append(pkg.Types, Type{
					Name:       ts.Name.Name,
					TypeParams: typeParamNames(ts),
					Annotated:  annotated,
					Pos:        pos,
				})
				g.log.DebugContext(ctx, "type selected",
					logger.Component("generator"),
					logger.Type(ts.Name.Name),
					logger.File(pos.Filename),
					slog.Bool("annotated", annotated),
				)
			}
		}
	}

	for _, name := range g.cfg.Types {
		if _, ok := in.specs[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, name, pkg.Name))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pkg, nil
}

func (g *Generator) parseDir(dir string) ([]*ast.File, *token.FileSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == g.cfg.Output {
			continue
		}

		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if isIgnored(f) {
			continue
		}
		files = append(files, f)
	}

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: no Go files in %s", ErrParse, dir)
	}
	return files, fset, nil
}

// checkType reports why a selected type cannot carry the generated methods.
func (in *inspector) checkType(ts *ast.TypeSpec) []error {
	name := ts.Name.Name
	pos := in.fset.Position(ts.Pos())

	if ts.Assign.IsValid() {
		return []error{fmt.Errorf("%s: %w: %s is a type alias", pos, ErrNotStruct, name)}
	}

	st, ok := in.underlyingStruct(ts.Type, map[string]bool{name: true})
	if !ok {
		return []error{fmt.Errorf("%s: %w: %s is %s", pos, ErrNotStruct, name, describe(ts.Type))}
	}

	var errs []error
	for _, field := range st.Fields.List {
		names := encodedNames(field)
		if len(names) == 0 {
			continue
		}
		reason, bad := in.unsupported(field.Type, map[string]bool{})
		if !bad {
			continue
		}
		fpos := in.fset.Position(field.Pos())
		errs = append(errs, fmt.Errorf("%s: %w: %s.%s is %s", fpos, ErrUnsupportedField, name, strings.Join(names, ", "), reason))
	}

	for _, method := range []string{"ToQueryString", "TryToQueryString"} {
		if mpos, ok := in.methods[name][method]; ok {
			errs = append(errs, fmt.Errorf("%s: %w: %s.%s", in.fset.Position(mpos), ErrMethodConflict, name, method))
		}
	}

	return errs
}

// underlyingStruct follows defined types declared in the same package down
// to a struct type literal.
func (in *inspector) underlyingStruct(expr ast.Expr, seen map[string]bool) (*ast.StructType, bool) {
	switch t := expr.(type) {
	case *ast.StructType:
		return t, true
	case *ast.ParenExpr:
		return in.underlyingStruct(t.X, seen)
	case *ast.Ident:
		spec, ok := in.specs[t.Name]
		if !ok || seen[t.Name] || spec.TypeParams != nil {
			return nil, false
		}
		seen[t.Name] = true
		return in.underlyingStruct(spec.Type, seen)
	}
	return nil, false
}

// unsupported reports field types that can never be encoded as query
// parameters. Types from other packages are trusted.
func (in *inspector) unsupported(expr ast.Expr, seen map[string]bool) (string, bool) {
	switch t := expr.(type) {
	case *ast.ChanType:
		return "a channel", true
	case *ast.FuncType:
		return "a func", true
	case *ast.ParenExpr:
		return in.unsupported(t.X, seen)
	case *ast.StarExpr:
		return in.unsupported(t.X, seen)
	case *ast.ArrayType:
		return in.unsupported(t.Elt, seen)
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "unsafe" && t.Sel.Name == "Pointer" {
			return "an unsafe.Pointer", true
		}
	case *ast.MapType:
		switch t.Key.(type) {
		case *ast.ArrayType, *ast.StructType, *ast.ChanType, *ast.FuncType, *ast.MapType:
			return "a map with unsupported key type", true
		}
		if reason, bad := in.unsupported(t.Key, seen); bad {
			return "a map keyed by " + reason, true
		}
		return in.unsupported(t.Value, seen)
	case *ast.StructType:
		for _, field := range t.Fields.List {
			names := encodedNames(field)
			if len(names) == 0 {
				continue
			}
			if reason, bad := in.unsupported(field.Type, seen); bad {
				return reason + " (field " + strings.Join(names, ", ") + ")", true
			}
		}
	case *ast.Ident:
		switch t.Name {
		case "complex64", "complex128":
			return "a complex number", true
		}
		if spec, ok := in.specs[t.Name]; ok && !seen[t.Name] {
			seen[t.Name] = true
			if reason, bad := in.unsupported(spec.Type, seen); bad {
				return reason + " (via " + t.Name + ")", true
			}
		}
	}
	return "", false
}

func collectMethods(files []*ast.File) map[string]map[string]token.Pos {
	methods := make(map[string]map[string]token.Pos)
	for _, f := range files {
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
				continue
			}
			recv := receiverTypeName(fd.Recv.List[0].Type)
			if recv == "" {
				continue
			}
			if methods[recv] == nil {
				methods[recv] = make(map[string]token.Pos)
			}
			methods[recv][fd.Name.Name] = fd.Pos()
		}
	}
	return methods
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return ""
}

func hasDirective(cg *ast.CommentGroup) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		text := strings.TrimSpace(c.Text)
		if text == Directive || strings.HasPrefix(text, Directive+" ") {
			return true
		}
	}
	return false
}

// isIgnored reports files excluded with a "//go:build ignore" constraint.
func isIgnored(f *ast.File) bool {
	for _, cg := range f.Comments {
		if cg.Pos() >= f.Package {
			break
		}
		for _, c := range cg.List {
			if strings.TrimSpace(c.Text) == "//go:build ignore" {
				return true
			}
		}
	}
	return false
}

func typeParamNames(ts *ast.TypeSpec) []string {
	if ts.TypeParams == nil {
		return nil
	}
	var names []string
	for _, field := range ts.TypeParams.List {
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}
	return names
}

// encodedNames returns the names of the field that qs.Encode writes with the
// default tag name: exported names, or the type name of an exported embedded
// field, unless the tag is query:"-".
func encodedNames(field *ast.Field) []string {
	if field.Tag != nil {
		tag, err := strconv.Unquote(field.Tag.Value)
		if err == nil && reflect.StructTag(tag).Get(qs.DefaultTagName) == "-" {
			return nil
		}
	}

	if len(field.Names) == 0 {
		if name := embeddedName(field.Type); ast.IsExported(name) {
			return []string{name}
		}
		return nil
	}

	var names []string
	for _, n := range field.Names {
		if n.IsExported() {
			names = append(names, n.Name)
		}
	}
	return names
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	}
	return receiverTypeName(expr)
}

func describe(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return "a defined type over " + t.Name
	case *ast.SelectorExpr:
		return "a defined type over " + selectorName(t)
	case *ast.InterfaceType:
		return "an interface"
	case *ast.FuncType:
		return "a func type"
	case *ast.MapType:
		return "a map type"
	case *ast.ArrayType:
		if t.Len == nil {
			return "a slice type"
		}
		return "an array type"
	case *ast.ChanType:
		return "a channel type"
	case *ast.StarExpr:
		return "a pointer type"
	case *ast.IndexExpr, *ast.IndexListExpr:
		return "an instantiated generic type"
	}
	return "not a struct"
}

func selectorName(sel *ast.SelectorExpr) string {
	if x, ok := sel.X.(*ast.Ident); ok {
		return x.Name + "." + sel.Sel.Name
	}
	return sel.Sel.Name
}
