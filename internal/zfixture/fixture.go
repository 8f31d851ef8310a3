// Package zfixture loads golden end-to-end test cases: one txtar
// archive per case, holding the Zinc source plus the expected emitted
// header/source text and/or expected diagnostics. This replaces
// esbuild's internal/bundler_tests bespoke "snapshots_*.txt" splitter
// format (a custom "\n===...===\n" separator plus a hand-rolled
// parser) with golang.org/x/tools/txtar, which is the same
// archive-of-named-files shape esbuild built by hand.
package zfixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
)

// Case is one loaded fixture: the Zinc input plus whatever golden
// files were present in its archive. A file is optional — a case that
// only exercises diagnostics may omit "want.h"/"want.c", and a case
// that only exercises emission may omit "want.diagnostics".
type Case struct {
	Name string

	// Source is the contents of the archive's "input.zn" file.
	Source string

	// WantHeader/WantSource hold "want.h"/"want.c" when present.
	WantHeader string
	WantSource string
	HasWant    bool

	// WantDiagnostics holds the newline-separated expected diagnostic
	// lines from "want.diagnostics", when present.
	WantDiagnostics []string
}

// Load reads every ".txtar" file in dir and returns one Case per
// archive, named after the archive's base file name.
func Load(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var cases []Case
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txtar") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		arc, err := txtar.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("zfixture: parsing %s: %w", path, err)
		}

		c := Case{Name: strings.TrimSuffix(entry.Name(), ".txtar")}
		found := false
		for _, f := range arc.Files {
			switch f.Name {
			case "input.zn":
				c.Source = string(f.Data)
				found = true
			case "want.h":
				c.WantHeader = string(f.Data)
				c.HasWant = true
			case "want.c":
				c.WantSource = string(f.Data)
				c.HasWant = true
			case "want.diagnostics":
				c.WantDiagnostics = splitNonEmpty(string(f.Data))
			}
		}
		if !found {
			return nil, fmt.Errorf("zfixture: %s has no input.zn file", path)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func splitNonEmpty(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
