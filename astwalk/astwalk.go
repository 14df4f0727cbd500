// Package astwalk provides iterators over the top-level declarations of a
// parsed Go file.
package astwalk

import (
	"go/ast"
	"go/token"
	"iter"
)

// TypeSpecs returns an iterator over the top-level type specs in the given
// file, paired with the declaration holding them, in source order.
// Example:
//
//	for decl, spec := range TypeSpecs(file) {
//		// use decl.Doc, spec.Type
//	}
func TypeSpecs(file *ast.File) iter.Seq2[*ast.GenDecl, *ast.TypeSpec] {
	return func(yield func(*ast.GenDecl, *ast.TypeSpec) bool) {
		if file == nil {
			return
		}

		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if !yield(genDecl, typeSpec) {
					return
				}
			}
		}
	}
}

// FuncDecls returns an iterator over the top-level functions and methods in
// the given file, in source order.
func FuncDecls(file *ast.File) iter.Seq[*ast.FuncDecl] {
	return func(yield func(*ast.FuncDecl) bool) {
		if file == nil {
			return
		}
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if !yield(fn) {
				return
			}
		}
	}
}
