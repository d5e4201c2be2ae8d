// Package versionfile discovers a version selector from the working
// directory when the user gives none on the command line (spec.md §6
// "Version files"), supplementing spec.md with the original
// implementation's two plain-text names and its package.json fallback.
package versionfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Strategy controls how far up the directory tree discovery walks.
type Strategy int

const (
	// Local only consults the current directory.
	Local Strategy = iota
	// Recursive walks up parent directories until a match or the
	// filesystem root.
	Recursive
)

const (
	dotVersionFile = ".pact-version"
	rcFile         = ".pactrc"
	packageJSON    = "package.json"
)

// Result is a discovered selector and the file it came from.
type Result struct {
	Selector string
	Source   string
}

// Discover implements the lookup order of spec.md §6: `.pact-version`,
// then `.pactrc`, then optionally package.json's `engines.pact` field.
func Discover(startDir string, strategy Strategy, resolveEngines bool) (Result, bool) {
	dir := startDir
	for {
		if r, ok := lookIn(dir, resolveEngines); ok {
			return r, true
		}
		if strategy == Local {
			return Result{}, false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Result{}, false
		}
		dir = parent
	}
}

func lookIn(dir string, resolveEngines bool) (Result, bool) {
	for _, name := range []string{dotVersionFile, rcFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		sel := strings.TrimSpace(string(data))
		if sel == "" {
			continue
		}
		return Result{Selector: sel, Source: path}, true
	}

	if !resolveEngines {
		return Result{}, false
	}

	path := filepath.Join(dir, packageJSON)
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, false
	}

	var parsed struct {
		Engines map[string]string `json:"engines"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Result{}, false
	}
	if rng, ok := parsed.Engines["pact"]; ok && strings.TrimSpace(rng) != "" {
		return Result{Selector: rng, Source: path}, true
	}
	return Result{}, false
}
