package scanner

import (
	"fmt"
	"strings"
	"sync"
)

// Kind defines the category of a type definition.
type Kind int

const (
	StructKind Kind = iota
	AliasKind
	FuncKind
	InterfaceKind
)

func (k Kind) String() string {
	switch k {
	case StructKind:
		return "struct"
	case AliasKind:
		return "alias"
	case FuncKind:
		return "func"
	case InterfaceKind:
		return "interface"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PackageInfo holds all the extracted information from a single package.
type PackageInfo struct {
	Name       string
	ImportPath string // Canonical import path of the package
	Files      []string
	Types      []*TypeInfo
	Functions  []*FunctionInfo

	lookupOnce sync.Once
	lookup     map[string]*TypeInfo
	methods    map[string][]*FunctionInfo
}

func (p *PackageInfo) buildIndex() {
	p.lookupOnce.Do(func() {
		p.lookup = make(map[string]*TypeInfo, len(p.Types))
		for _, t := range p.Types {
			p.lookup[t.Name] = t
		}
		p.methods = make(map[string][]*FunctionInfo)
		for _, f := range p.Functions {
			if f.Receiver == nil {
				continue
			}
			name := f.Receiver.Type.Name
			p.methods[name] = append(p.methods[name], f)
		}
	})
}

// Lookup finds a type by name in the package.
func (p *PackageInfo) Lookup(name string) *TypeInfo {
	p.buildIndex()
	return p.lookup[name]
}

// MethodsOf returns the methods declared with the named type as receiver,
// in declaration order. Value and pointer receivers are not distinguished.
func (p *PackageInfo) MethodsOf(typeName string) []*FunctionInfo {
	p.buildIndex()
	return p.methods[typeName]
}

// TypeInfo represents a single type declaration (`type T ...`).
type TypeInfo struct {
	Name       string         `json:"name"`
	FilePath   string         `json:"filePath"`
	Doc        string         `json:"doc,omitempty"`
	Kind       Kind           `json:"kind"`
	Struct     *StructInfo    `json:"struct,omitempty"`
	Func       *FunctionInfo  `json:"func,omitempty"` // For type alias to func type
	Interface  *InterfaceInfo `json:"interface,omitempty"`
	Underlying *FieldType     `json:"underlying,omitempty"` // For alias types
}

// InterfaceInfo represents an interface type.
type InterfaceInfo struct {
	Methods  []*MethodInfo
	Embedded []*FieldType
}

// MethodInfo represents a single method in an interface.
type MethodInfo struct {
	Name       string
	Parameters []*FieldInfo
	Results    []*FieldInfo
}

// StructInfo represents a struct type.
type StructInfo struct {
	Fields []*FieldInfo
}

// FieldInfo represents a single field in a struct or a parameter/result in a function.
type FieldInfo struct {
	Name     string
	Doc      string
	Type     *FieldType
	Embedded bool
}

// FieldType represents the type of a field.
type FieldType struct {
	Name      string        `json:"name"`
	PkgName   string        `json:"pkgName,omitempty"`
	MapKey    *FieldType    `json:"mapKey,omitempty"`
	Elem      *FieldType    `json:"elem,omitempty"`
	IsPointer bool          `json:"isPointer,omitempty"`
	IsSlice   bool          `json:"isSlice,omitempty"`
	IsMap     bool          `json:"isMap,omitempty"`
	IsFunc    bool          `json:"isFunc,omitempty"`
	Func      *FunctionInfo `json:"func,omitempty"`     // For func-typed fields
	TypeArgs  []*FieldType  `json:"typeArgs,omitempty"` // For instantiated generic types, e.g. Box[int]

	fullImportPath string
	typeName       string
}

// FullImportPath returns the fully qualified import path if this type is from an external package.
// Returns an empty string if the type is local or not from a qualified package.
func (ft *FieldType) FullImportPath() string {
	return ft.fullImportPath
}

// TypeName returns the name of the type without its package qualifier or
// type arguments, as it is declared in its own package.
func (ft *FieldType) TypeName() string {
	if ft.typeName != "" {
		return ft.typeName
	}
	return ft.Name
}

// String returns the Go string representation of the field type.
// e.g., "*pkgname.MyType", "[]string", "map[string]int", "func() float64", "Box[T]"
func (ft *FieldType) String() string {
	if ft == nil {
		return "<nil_FieldType>"
	}
	var sb strings.Builder

	if ft.IsPointer {
		sb.WriteString("*")
	}

	switch {
	case ft.IsSlice:
		sb.WriteString("[]")
		if ft.Elem != nil {
			sb.WriteString(ft.Elem.String())
		} else {
			sb.WriteString("any")
		}
		return sb.String()
	case ft.IsMap:
		sb.WriteString("map[")
		if ft.MapKey != nil {
			sb.WriteString(ft.MapKey.String())
		} else {
			sb.WriteString("any")
		}
		sb.WriteString("]")
		if ft.Elem != nil {
			sb.WriteString(ft.Elem.String())
		} else {
			sb.WriteString("any")
		}
		return sb.String()
	case ft.IsFunc:
		sb.WriteString(ft.Func.Signature())
		return sb.String()
	}

	name := ft.Name
	if ft.PkgName != "" && ft.typeName != "" {
		name = ft.PkgName + "." + ft.typeName
	}
	sb.WriteString(name)
	if len(ft.TypeArgs) > 0 {
		sb.WriteString("[")
		for i, arg := range ft.TypeArgs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString("]")
	}
	return sb.String()
}

// FunctionInfo represents a single top-level function or method declaration.
type FunctionInfo struct {
	Name       string       `json:"name"`
	FilePath   string       `json:"filePath"`
	Doc        string       `json:"doc,omitempty"`
	Receiver   *FieldInfo   `json:"receiver,omitempty"`
	Parameters []*FieldInfo `json:"parameters,omitempty"`
	Results    []*FieldInfo `json:"results,omitempty"`
}

// Signature renders the function type without its name or receiver,
// e.g. "func() float64" or "func(x int, y int) (int, error)".
func (f *FunctionInfo) Signature() string {
	if f == nil {
		return "func()"
	}
	var sb strings.Builder
	sb.WriteString("func(")
	writeFieldList(&sb, f.Parameters)
	sb.WriteString(")")
	switch {
	case len(f.Results) == 0:
	case len(f.Results) == 1 && f.Results[0].Name == "":
		sb.WriteString(" ")
		sb.WriteString(f.Results[0].Type.String())
	default:
		sb.WriteString(" (")
		writeFieldList(&sb, f.Results)
		sb.WriteString(")")
	}
	return sb.String()
}

func writeFieldList(sb *strings.Builder, fields []*FieldInfo) {
	for i, p := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Name != "" {
			sb.WriteString(p.Name)
			sb.WriteString(" ")
		}
		sb.WriteString(p.Type.String())
	}
}
