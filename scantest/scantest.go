// Package scantest provides helpers for tests that feed Go source to the scanner.
package scantest

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/podhmo/playspec/scanner"
)

// ActionFunc is a function that performs a check based on a scan result.
type ActionFunc func(ctx context.Context, pkg *scanner.PackageInfo) error

// WriteFiles builds an in-memory source tree populated with the given files.
func WriteFiles(t *testing.T, files map[string]string) fstest.MapFS {
	t.Helper()
	fsys := make(fstest.MapFS, len(files))
	for name, content := range files {
		if !fs.ValidPath(name) {
			t.Fatalf("invalid file name %q", name)
		}
		fsys[name] = &fstest.MapFile{Data: []byte(content), Mode: 0644}
	}
	return fsys
}

// Run scans fsys as the package importPath and executes action against the result.
func Run(t *testing.T, ctx context.Context, fsys fs.FS, importPath string, action ActionFunc, options ...scanner.Option) error {
	t.Helper()
	s := scanner.New(options...)
	pkg, err := s.ScanFS(ctx, fsys, importPath)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if err := action(ctx, pkg); err != nil {
		return fmt.Errorf("action: %w", err)
	}
	return nil
}
