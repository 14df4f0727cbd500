package scanner

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/podhmo/playspec/astwalk"
	"golang.org/x/mod/module"
	"golang.org/x/sync/errgroup"
)

// Scanner parses the Go source files of a single package.
type Scanner struct {
	fset   *token.FileSet
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger for the scanner.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a new Scanner.
func New(options ...Option) *Scanner {
	s := &Scanner{fset: token.NewFileSet()}
	for _, opt := range options {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// ScanFS parses all non-test .go files at the root of fsys as the package
// identified by importPath, and returns its PackageInfo.
// Files are parsed concurrently; the result lists files in name order and
// declarations in source order.
func (s *Scanner) ScanFS(ctx context.Context, fsys fs.FS, importPath string) (*PackageInfo, error) {
	if err := module.CheckImportPath(importPath); err != nil {
		return nil, fmt.Errorf("invalid import path %q: %w", importPath, err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list files of %s: %w", importPath, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no buildable Go source files in %s", importPath)
	}

	files := make([]*ast.File, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			f, err := parser.ParseFile(s.fset, name, src, parser.ParseComments)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", name, err)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	info := &PackageInfo{ImportPath: importPath}
	for i, file := range files {
		if info.Name == "" {
			info.Name = file.Name.Name
		} else if info.Name != file.Name.Name {
			return nil, fmt.Errorf("multiple packages found in %s: %s and %s", importPath, info.Name, file.Name.Name)
		}
		info.Files = append(info.Files, names[i])

		fsc := &fileScanner{path: names[i], importLookup: buildImportLookup(file)}
		for decl, spec := range astwalk.TypeSpecs(file) {
			ti := fsc.parseTypeSpec(spec)
			if ti.Doc == "" && len(decl.Specs) == 1 {
				ti.Doc = commentText(decl.Doc)
			}
			info.Types = append(info.Types, ti)
		}
		for fn := range astwalk.FuncDecls(file) {
			info.Functions = append(info.Functions, fsc.parseFuncDecl(fn))
		}
	}

	s.logger.DebugContext(ctx, "scanned package",
		slog.String("importPath", importPath),
		slog.Int("files", len(info.Files)),
		slog.Int("types", len(info.Types)),
		slog.Int("functions", len(info.Functions)),
	)
	return info, nil
}

// fileScanner holds the per-file state needed while walking declarations.
type fileScanner struct {
	path         string
	importLookup map[string]string // Maps import alias/name to full import path for the current file.
}

func buildImportLookup(file *ast.File) map[string]string {
	lookup := make(map[string]string, len(file.Imports))
	for _, i := range file.Imports {
		path := strings.Trim(i.Path.Value, `"`)
		if i.Name != nil {
			// Explicit alias, e.g., `m "example.com/models"`
			lookup[i.Name.Name] = path
		} else {
			// Default name, e.g., `import "example.com/models"` -> name is "models"
			parts := strings.Split(path, "/")
			lookup[parts[len(parts)-1]] = path
		}
	}
	return lookup
}

func (s *fileScanner) parseTypeSpec(sp *ast.TypeSpec) *TypeInfo {
	typeInfo := &TypeInfo{
		Name:     sp.Name.Name,
		FilePath: s.path,
		Doc:      commentText(sp.Doc),
	}

	switch t := sp.Type.(type) {
	case *ast.StructType:
		typeInfo.Kind = StructKind
		typeInfo.Struct = s.parseStructType(t)
	case *ast.InterfaceType:
		typeInfo.Kind = InterfaceKind
		typeInfo.Interface = s.parseInterfaceType(t)
	case *ast.FuncType:
		typeInfo.Kind = FuncKind
		typeInfo.Func = s.parseFuncType(t)
	default:
		typeInfo.Kind = AliasKind
		typeInfo.Underlying = s.parseTypeExpr(sp.Type)
	}

	return typeInfo
}

func (s *fileScanner) parseStructType(st *ast.StructType) *StructInfo {
	structInfo := &StructInfo{}
	for _, field := range st.Fields.List {
		fieldType := s.parseTypeExpr(field.Type)

		doc := commentText(field.Doc)
		if doc == "" {
			doc = commentText(field.Comment)
		}

		if len(field.Names) > 0 {
			for _, name := range field.Names {
				structInfo.Fields = append(structInfo.Fields, &FieldInfo{
					Name: name.Name,
					Doc:  doc,
					Type: fieldType,
				})
			}
		} else { // Embedded field
			structInfo.Fields = append(structInfo.Fields, &FieldInfo{
				Name:     fieldType.TypeName(),
				Doc:      doc,
				Type:     fieldType,
				Embedded: true,
			})
		}
	}
	return structInfo
}

func (s *fileScanner) parseInterfaceType(it *ast.InterfaceType) *InterfaceInfo {
	info := &InterfaceInfo{}
	for _, field := range it.Methods.List {
		ft, ok := field.Type.(*ast.FuncType)
		if !ok || len(field.Names) == 0 {
			info.Embedded = append(info.Embedded, s.parseTypeExpr(field.Type))
			continue
		}
		fn := s.parseFuncType(ft)
		for _, name := range field.Names {
			info.Methods = append(info.Methods, &MethodInfo{
				Name:       name.Name,
				Parameters: fn.Parameters,
				Results:    fn.Results,
			})
		}
	}
	return info
}

func (s *fileScanner) parseFuncDecl(f *ast.FuncDecl) *FunctionInfo {
	funcInfo := s.parseFuncType(f.Type)
	funcInfo.Name = f.Name.Name
	funcInfo.FilePath = s.path
	funcInfo.Doc = commentText(f.Doc)

	if f.Recv != nil && len(f.Recv.List) > 0 {
		recvField := f.Recv.List[0]
		var recvName string
		if len(recvField.Names) > 0 {
			recvName = recvField.Names[0].Name
		}
		funcInfo.Receiver = &FieldInfo{
			Name: recvName,
			Type: s.parseTypeExpr(recvField.Type),
		}
	}

	return funcInfo
}

func (s *fileScanner) parseFuncType(ft *ast.FuncType) *FunctionInfo {
	funcInfo := &FunctionInfo{}
	if ft.Params != nil {
		funcInfo.Parameters = s.parseFieldList(ft.Params.List)
	}
	if ft.Results != nil {
		funcInfo.Results = s.parseFieldList(ft.Results.List)
	}
	return funcInfo
}

func (s *fileScanner) parseFieldList(fields []*ast.Field) []*FieldInfo {
	var result []*FieldInfo
	for _, field := range fields {
		fieldType := s.parseTypeExpr(field.Type)
		if len(field.Names) > 0 {
			for _, name := range field.Names {
				result = append(result, &FieldInfo{Name: name.Name, Type: fieldType})
			}
		} else {
			result = append(result, &FieldInfo{Type: fieldType})
		}
	}
	return result
}

func (s *fileScanner) parseTypeExpr(expr ast.Expr) *FieldType {
	ft := &FieldType{}
	switch t := expr.(type) {
	case *ast.Ident:
		ft.Name = t.Name
	case *ast.StarExpr:
		underlyingType := s.parseTypeExpr(t.X)
		underlyingType.IsPointer = true
		return underlyingType
	case *ast.SelectorExpr:
		pkgIdent, ok := t.X.(*ast.Ident)
		if !ok {
			ft.Name = "unsupported_selector"
			return ft
		}
		ft.Name = fmt.Sprintf("%s.%s", pkgIdent.Name, t.Sel.Name)
		ft.PkgName = pkgIdent.Name
		ft.typeName = t.Sel.Name
		ft.fullImportPath = s.importLookup[pkgIdent.Name]
	case *ast.ArrayType:
		ft.IsSlice = true
		ft.Name = "slice"
		ft.Elem = s.parseTypeExpr(t.Elt)
	case *ast.MapType:
		ft.IsMap = true
		ft.Name = "map"
		ft.MapKey = s.parseTypeExpr(t.Key)
		ft.Elem = s.parseTypeExpr(t.Value)
	case *ast.FuncType:
		ft.IsFunc = true
		ft.Name = "func"
		ft.Func = s.parseFuncType(t)
	case *ast.IndexExpr:
		// Generic instantiation or receiver, e.g. Box[int] or Box[T].
		base := s.parseTypeExpr(t.X)
		base.TypeArgs = []*FieldType{s.parseTypeExpr(t.Index)}
		return base
	case *ast.IndexListExpr:
		base := s.parseTypeExpr(t.X)
		for _, index := range t.Indices {
			base.TypeArgs = append(base.TypeArgs, s.parseTypeExpr(index))
		}
		return base
	case *ast.InterfaceType:
		ft.Name = "any"
	default:
		ft.Name = fmt.Sprintf("unhandled_type_%T", t)
	}
	return ft
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}
