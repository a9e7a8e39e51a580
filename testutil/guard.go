// Package testutil provides reusable testing helpers for enforcing import
// boundaries across the repository: pkg/protocolapi and plugins/ stay free of
// internal packages so contributors only ever see the public value types.
package testutil

import (
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// ModulePath is the root import path of this module.
const ModulePath = "protocolkb"

// AssertNoDirectImports scans all non-test .go files in dir (typically "." from
// within the package) and fails if any import path satisfies forbidden.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	viols, err := directImportViolations(dir, forbidden)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	failIfDirectViolations(t, reason, viols)
}

// AssertNoImportsUnder walks root recursively and applies the same check as
// AssertNoDirectImports to every package directory below it. Directories
// named testdata are skipped.
func AssertNoImportsUnder(t testing.TB, root string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	var viols []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == "testdata" {
			return filepath.SkipDir
		}
		found, err := directImportViolations(path, forbidden)
		if err != nil {
			return err
		}
		for _, v := range found {
			viols = append(viols, filepath.ToSlash(path)+": "+v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	sort.Strings(viols)
	failIfDirectViolations(t, reason, viols)
}

// InternalImportForbidden matches any import path below an internal/ segment.
func InternalImportForbidden(path string) bool {
	return strings.Contains(path, "/internal/") || strings.HasPrefix(path, ModulePath+"/internal")
}

// CoreImportForbidden matches the catalog engine package.
func CoreImportForbidden(path string) bool {
	return path == ModulePath+"/internal/core" || strings.HasPrefix(path, ModulePath+"/internal/core/")
}

// ThirdPartyImportForbidden matches imports that are neither standard library
// nor part of this module, except for the allowed prefixes.
func ThirdPartyImportForbidden(allowed ...string) func(path string) bool {
	return func(path string) bool {
		if path == ModulePath || strings.HasPrefix(path, ModulePath+"/") {
			return false
		}
		first, _, _ := strings.Cut(path, "/")
		if !strings.Contains(first, ".") {
			return false
		}
		for _, prefix := range allowed {
			if strings.HasPrefix(path, prefix) {
				return false
			}
		}
		return true
	}
}

func directImportViolations(dir string, forbidden func(importPath string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var viols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(dir, name)
		fileAst, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range fileAst.Imports {
			ip := strings.Trim(imp.Path.Value, "\"")
			if forbidden(ip) {
				viols = append(viols, ip+" (in "+name+")")
			}
		}
	}
	return viols, nil
}

type fatalLogger interface {
	Fatalf(format string, args ...any)
}

func failIfDirectViolations(t fatalLogger, reason string, viols []string) {
	if len(viols) > 0 {
		t.Fatalf("forbidden direct imports detected (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}
