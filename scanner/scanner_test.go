package scanner_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/podhmo/playspec/scanner"
	"github.com/podhmo/playspec/scantest"
	"github.com/podhmo/playspec/shape"
)

func TestScanFS_Shape(t *testing.T) {
	action := func(ctx context.Context, pkg *scanner.PackageInfo) error {
		if pkg.Name != "shape" {
			return fmt.Errorf("unexpected package name %q", pkg.Name)
		}
		if diff := cmp.Diff([]string{"shape.go"}, pkg.Files); diff != "" {
			return fmt.Errorf("files mismatch (-want +got):\n%s", diff)
		}

		circle := pkg.Lookup("Circle")
		if circle == nil {
			return fmt.Errorf("type Circle not found")
		}
		if circle.Kind != scanner.StructKind {
			return fmt.Errorf("expected Circle to be a struct, but got %v", circle.Kind)
		}

		type field struct {
			Name     string
			Type     string
			Embedded bool
		}
		var got []field
		for _, f := range circle.Struct.Fields {
			got = append(got, field{Name: f.Name, Type: f.Type.String(), Embedded: f.Embedded})
		}
		want := []field{
			{Name: "Base", Type: "Base", Embedded: true},
			{Name: "Radius", Type: "float64"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			return fmt.Errorf("Circle fields mismatch (-want +got):\n%s", diff)
		}

		iface := pkg.Lookup("Shape")
		if iface == nil || iface.Kind != scanner.InterfaceKind {
			return fmt.Errorf("expected Shape to be an interface, got %+v", iface)
		}
		var methods []string
		for _, m := range iface.Interface.Methods {
			methods = append(methods, m.Name)
		}
		if diff := cmp.Diff([]string{"Area", "Circumference"}, methods); diff != "" {
			return fmt.Errorf("Shape methods mismatch (-want +got):\n%s", diff)
		}
		return nil
	}

	if err := scantest.Run(t, context.Background(), shape.Source, shape.ImportPath, action); err != nil {
		t.Fatalf("scantest.Run() failed: %v", err)
	}
}

func TestMethodsOf(t *testing.T) {
	fsys := scantest.WriteFiles(t, map[string]string{
		"a.go": `
package a

type T struct{ n int }

func (t T) Get() int { return t.n }
func (t *T) Set(n int) { t.n = n }
func Free() {}
`,
		"b.go": `
package a

// Pair returns two values.
func (t *T) Pair(label string) (n int, err error) { return t.n, nil }

type U struct{}
`,
	})

	action := func(ctx context.Context, pkg *scanner.PackageInfo) error {
		type method struct {
			Name, Signature, File string
		}
		var got []method
		for _, fn := range pkg.MethodsOf("T") {
			got = append(got, method{Name: fn.Name, Signature: fn.Signature(), File: fn.FilePath})
		}
		want := []method{
			{Name: "Get", Signature: "func() int", File: "a.go"},
			{Name: "Set", Signature: "func(n int)", File: "a.go"},
			{Name: "Pair", Signature: "func(label string) (n int, err error)", File: "b.go"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			return fmt.Errorf("methods mismatch (-want +got):\n%s", diff)
		}
		if ms := pkg.MethodsOf("U"); len(ms) != 0 {
			return fmt.Errorf("expected no methods on U, got %d", len(ms))
		}
		if ms := pkg.MethodsOf("Missing"); ms != nil {
			return fmt.Errorf("expected nil for an unknown type, got %v", ms)
		}

		var pair *scanner.FunctionInfo
		for _, fn := range pkg.Functions {
			if fn.Name == "Pair" {
				pair = fn
			}
		}
		if pair == nil || pair.Doc != "Pair returns two values." {
			return fmt.Errorf("expected Pair with its doc comment, got %+v", pair)
		}
		return nil
	}

	if err := scantest.Run(t, context.Background(), fsys, "example.com/a", action); err != nil {
		t.Fatalf("scantest.Run() failed: %v", err)
	}
}

func TestScanFS_EmbeddedAcrossPackages(t *testing.T) {
	fsys := scantest.WriteFiles(t, map[string]string{
		"b.go": `
package b

import (
	m "example.com/models"
	"example.com/base"
)

type Wrapper struct {
	*base.Thing
	m.Model
	Callback func(x int) error
	Tags     map[string][]string
	Any      interface{}
}
`,
	})

	action := func(ctx context.Context, pkg *scanner.PackageInfo) error {
		w := pkg.Lookup("Wrapper")
		if w == nil {
			return fmt.Errorf("type Wrapper not found")
		}
		type field struct {
			Name, Type, Import string
			Embedded           bool
		}
		var got []field
		for _, f := range w.Struct.Fields {
			got = append(got, field{Name: f.Name, Type: f.Type.String(), Import: f.Type.FullImportPath(), Embedded: f.Embedded})
		}
		want := []field{
			{Name: "Thing", Type: "*base.Thing", Import: "example.com/base", Embedded: true},
			{Name: "Model", Type: "m.Model", Import: "example.com/models", Embedded: true},
			{Name: "Callback", Type: "func(x int) error"},
			{Name: "Tags", Type: "map[string][]string"},
			{Name: "Any", Type: "any"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			return fmt.Errorf("fields mismatch (-want +got):\n%s", diff)
		}
		return nil
	}

	if err := scantest.Run(t, context.Background(), fsys, "example.com/b", action); err != nil {
		t.Fatalf("scantest.Run() failed: %v", err)
	}
}

func TestScanFS_Generics(t *testing.T) {
	fsys := scantest.WriteFiles(t, map[string]string{
		"g.go": `
package g

type Box[T any] struct{ Item T }

func (b Box[T]) Get() T { return b.Item }

type Pair[K comparable, V any] struct {
	Key K
	Val V
}

func (p *Pair[K, V]) Swap() {}

type Shelf struct {
	Box[int]
	Pairs []Pair[string, int]
}
`,
	})

	action := func(ctx context.Context, pkg *scanner.PackageInfo) error {
		type method struct{ Name, Receiver, Signature string }
		var got []method
		for _, name := range []string{"Box", "Pair"} {
			for _, fn := range pkg.MethodsOf(name) {
				got = append(got, method{Name: fn.Name, Receiver: fn.Receiver.Type.String(), Signature: fn.Signature()})
			}
		}
		want := []method{
			{Name: "Get", Receiver: "Box[T]", Signature: "func() T"},
			{Name: "Swap", Receiver: "*Pair[K, V]", Signature: "func()"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			return fmt.Errorf("methods mismatch (-want +got):\n%s", diff)
		}

		shelf := pkg.Lookup("Shelf")
		if shelf == nil {
			return fmt.Errorf("type Shelf not found")
		}
		type field struct {
			Name, Type string
			Embedded   bool
		}
		var fields []field
		for _, f := range shelf.Struct.Fields {
			fields = append(fields, field{Name: f.Name, Type: f.Type.String(), Embedded: f.Embedded})
		}
		wantFields := []field{
			{Name: "Box", Type: "Box[int]", Embedded: true},
			{Name: "Pairs", Type: "[]Pair[string, int]"},
		}
		if diff := cmp.Diff(wantFields, fields); diff != "" {
			return fmt.Errorf("Shelf fields mismatch (-want +got):\n%s", diff)
		}
		return nil
	}

	if err := scantest.Run(t, context.Background(), fsys, "example.com/g", action); err != nil {
		t.Fatalf("scantest.Run() failed: %v", err)
	}
}

func TestScanFS_Errors(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name       string
		files      fstest.MapFS
		importPath string
		wantErr    string
	}{
		{
			name:       "invalid import path",
			files:      fstest.MapFS{"a.go": {Data: []byte("package a\n")}},
			importPath: "bad path with spaces",
			wantErr:    "invalid import path",
		},
		{
			name:       "no go files",
			files:      fstest.MapFS{"README.md": {Data: []byte("hi")}, "a_test.go": {Data: []byte("package a\n")}},
			importPath: "example.com/a",
			wantErr:    "no buildable Go source files",
		},
		{
			name:       "syntax error",
			files:      fstest.MapFS{"a.go": {Data: []byte("package a\nfunc {")}},
			importPath: "example.com/a",
			wantErr:    "failed to parse a.go",
		},
		{
			name: "multiple packages",
			files: fstest.MapFS{
				"a.go": {Data: []byte("package a\n")},
				"b.go": {Data: []byte("package b\n")},
			},
			importPath: "example.com/a",
			wantErr:    "multiple packages",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := scanner.New().ScanFS(ctx, c.files, c.importPath)
			if err == nil {
				t.Fatalf("expected an error containing %q, got nil", c.wantErr)
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("expected an error containing %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestScanFS_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.New().ScanFS(ctx, shape.Source, shape.ImportPath)
	if err == nil {
		t.Fatal("expected an error for a canceled context")
	}
}

func TestKind_String(t *testing.T) {
	cases := map[scanner.Kind]string{
		scanner.StructKind:    "struct",
		scanner.AliasKind:     "alias",
		scanner.FuncKind:      "func",
		scanner.InterfaceKind: "interface",
		scanner.Kind(99):      "Kind(99)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
