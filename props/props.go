// Package props enumerates the properties of a value, telling apart the
// fields stored on the instance itself from what it gets from its type:
// methods, and anything promoted from embedded types.
//
// The classification is static. It comes from the declarations recorded by
// the scanner, not from inspecting the value, so a Registry must be given the
// packages declaring the types it is asked about.
package props

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/podhmo/playspec/scanner"
)

var (
	// ErrNotStruct is returned when the value is not a struct or a pointer to one.
	ErrNotStruct = errors.New("not a struct")
	// ErrUnknownType is returned when the value's type was not declared in any
	// registered package.
	ErrUnknownType = errors.New("unknown type")
)

// Kind tells fields and methods apart.
type Kind int

const (
	Field Kind = iota
	Method
)

func (k Kind) String() string {
	if k == Method {
		return "method"
	}
	return "field"
}

// Property is a single enumerated property.
type Property struct {
	Name string
	Kind Kind
	// Own is true for fields declared directly on the instance's type.
	Own bool
	// DeclaredOn is the name of the type declaring the property.
	DeclaredOn string
	// Value is the field's current value, or the method's signature.
	Value string
}

// Registry maps types to their declarations.
type Registry struct {
	packages map[string]*scanner.PackageInfo // by import path
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithPackages registers scanned packages.
func WithPackages(pkgs ...*scanner.PackageInfo) Option {
	return func(r *Registry) {
		for _, pkg := range pkgs {
			r.packages[pkg.ImportPath] = pkg
		}
	}
}

// WithLogger sets the logger for the registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a Registry.
func New(options ...Option) *Registry {
	r := &Registry{packages: map[string]*scanner.PackageInfo{}}
	for _, opt := range options {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// NewRegistry creates a Registry knowing the declarations of pkgs.
func NewRegistry(pkgs ...*scanner.PackageInfo) *Registry {
	return New(WithPackages(pkgs...))
}

// level is one step of the walk down the embedding chain.
type level struct {
	pkg   *scanner.PackageInfo
	typ   *scanner.TypeInfo
	value reflect.Value // invalid when the embedded value is a nil pointer
}

func (lv level) key() string {
	return lv.pkg.ImportPath + "." + lv.typ.Name
}

// Enumerate lists the properties of v, which must be a struct or a pointer
// to a struct of a registered type.
//
// Own properties come first, in declaration order. Then come the parent
// properties: the methods of v's type followed by those promoted from
// embedded types, then fields promoted from embedded types. A name already
// reported is not reported again, so a redefined method hides the one of the
// embedded type. Methods of interfaces embedded in embedded interfaces are
// included, and each embedded type is visited once even when the embedding
// is recursive.
func (r *Registry) Enumerate(v any) ([]Property, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("nil %s: %w", rv.Type(), ErrNotStruct)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%T: %w", v, ErrNotStruct)
	}

	rt := rv.Type()
	pkg, ok := r.packages[rt.PkgPath()]
	if !ok || rt.Name() == "" {
		return nil, fmt.Errorf("%s: %w", rt, ErrUnknownType)
	}
	typ := pkg.Lookup(declaredName(rt))
	if typ == nil || typ.Kind != scanner.StructKind {
		return nil, fmt.Errorf("%s: %w", rt, ErrUnknownType)
	}

	seen := map[string]bool{}
	var own, methods, promoted []Property

	for _, f := range typ.Struct.Fields {
		if f.Embedded {
			continue
		}
		seen[f.Name] = true
		own = append(own, Property{
			Name:       f.Name,
			Kind:       Field,
			Own:        true,
			DeclaredOn: typ.Name,
			Value:      fieldValue(rv, f),
		})
	}

	// A type is walked once, so self or mutual embedding through pointers ends.
	root := level{pkg: pkg, typ: typ, value: rv}
	visited := map[string]bool{root.key(): true}
	queue := []level{root}
	for depth := 0; len(queue) > 0; depth++ {
		var next []level
		enqueue := func(child level, ok bool) {
			if !ok || visited[child.key()] {
				return
			}
			visited[child.key()] = true
			next = append(next, child)
		}

		for _, lv := range queue {
			for _, m := range r.methodsOf(lv) {
				if seen[m.Name] {
					continue
				}
				seen[m.Name] = true
				methods = append(methods, m)
			}

			switch {
			case lv.typ.Struct != nil:
				for _, f := range lv.typ.Struct.Fields {
					if f.Embedded {
						enqueue(r.embedded(lv, f.Type, f.Name))
						continue
					}
					if depth > 0 && !seen[f.Name] {
						seen[f.Name] = true
						promoted = append(promoted, Property{
							Name:       f.Name,
							Kind:       Field,
							DeclaredOn: lv.typ.Name,
							Value:      fieldValue(lv.value, f),
						})
					}
				}
			case lv.typ.Interface != nil:
				for _, ft := range lv.typ.Interface.Embedded {
					enqueue(r.embedded(lv, ft, ""))
				}
			}
		}
		queue = next
	}

	props := make([]Property, 0, len(own)+len(methods)+len(promoted))
	props = append(props, own...)
	props = append(props, methods...)
	props = append(props, promoted...)
	return props, nil
}

// declaredName is the name of rt in its declaration; the type arguments of
// an instantiated generic type are dropped, so Box[int] is found as Box.
func declaredName(rt reflect.Type) string {
	name := rt.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func (r *Registry) methodsOf(lv level) []Property {
	var methods []Property
	for _, fn := range lv.pkg.MethodsOf(lv.typ.Name) {
		methods = append(methods, Property{
			Name:       fn.Name,
			Kind:       Method,
			DeclaredOn: lv.typ.Name,
			Value:      fn.Signature(),
		})
	}
	if lv.typ.Interface != nil {
		for _, m := range lv.typ.Interface.Methods {
			sig := &scanner.FunctionInfo{Parameters: m.Parameters, Results: m.Results}
			methods = append(methods, Property{
				Name:       m.Name,
				Kind:       Method,
				DeclaredOn: lv.typ.Name,
				Value:      sig.Signature(),
			})
		}
	}
	return methods
}

// embedded resolves the declaration of an embedded type: the type of an
// embedded struct field, or an interface embedded in an interface (field is
// empty then, and the level carries no value). Types from packages that
// were not registered are skipped.
func (r *Registry) embedded(lv level, ft *scanner.FieldType, field string) (level, bool) {
	pkg := lv.pkg
	if ft.PkgName != "" {
		p, ok := r.packages[ft.FullImportPath()]
		if !ok {
			r.logger.Warn("embedded type from an unregistered package, skipping",
				slog.String("type", lv.typ.Name),
				slog.String("embedded", ft.String()),
			)
			return level{}, false
		}
		pkg = p
	}
	typ := pkg.Lookup(ft.TypeName())
	if typ == nil {
		r.logger.Warn("embedded type not found, skipping",
			slog.String("type", lv.typ.Name),
			slog.String("embedded", ft.String()),
		)
		return level{}, false
	}

	var value reflect.Value
	if field != "" && lv.value.IsValid() {
		value = lv.value.FieldByName(field)
		for value.Kind() == reflect.Pointer {
			if value.IsNil() {
				value = reflect.Value{}
				break
			}
			value = value.Elem()
		}
	}
	return level{pkg: pkg, typ: typ, value: value}, true
}

func fieldValue(rv reflect.Value, f *scanner.FieldInfo) string {
	if !rv.IsValid() {
		return "<nil>"
	}
	fv := rv.FieldByName(f.Name)
	if !fv.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprint(fv)
}

// Fprint writes one line per property, in the form
// "object property: Radius: 12" or "parent property: Area: func() float64".
func Fprint(w io.Writer, props []Property) error {
	for _, p := range props {
		prefix := "parent property"
		if p.Own {
			prefix = "object property"
		}
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n", prefix, p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}
