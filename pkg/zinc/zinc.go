// Package zinc is the embeddable entry point other Go programs import
// directly to compile Zinc source to C99, mirroring esbuild's pkg/api
// being a thin wrapper over its internal packages that never touches
// the process (no os.Exit, no direct file I/O) — callers own all of
// that. cmd/zinc is one such caller; it is not privileged over any
// other importer of this package.
package zinc

import (
	"github.com/redodson01/zinc/internal/logger"
	"github.com/redodson01/zinc/internal/zemit"
	"github.com/redodson01/zinc/internal/zparser"
	"github.com/redodson01/zinc/internal/zsema"
	"github.com/redodson01/zinc/internal/zsymbols"
)

// Options controls one Compile call.
type Options struct {
	// SourcePath is used only to emit `#line` directives into the
	// generated C; it is never opened by this package.
	SourcePath string
	// BaseName names the emitted header/source pair and the include
	// guard (spec.md §6: "<base>.c and <base>.h").
	BaseName string
}

// Diagnostic is one parse or semantic error, independent of
// logger.Msg so callers of this package don't need to import
// internal/logger to read a Result.
type Diagnostic struct {
	Phase string // "parse" or "semantic"
	Line  int
	Text  string
}

// Result carries everything one Compile call produced: the emitted
// header/source text (empty if analysis failed) and every diagnostic
// from both the parse and semantic-analysis phases.
type Result struct {
	Header      string
	Source      string
	Diagnostics []Diagnostic
	ParseErrors int
	SemaErrors  int
}

// Compile parses, analyzes, and (if analysis is clean) emits source.
// It never exits the process or writes to disk; Result.Diagnostics
// carries everything a caller needs to decide whether to proceed.
func Compile(source string, opts Options) Result {
	prog, parseLog := zparser.Parse(source)

	var res Result
	res.Diagnostics = append(res.Diagnostics, toDiagnostics(parseLog)...)
	res.ParseErrors = parseLog.ErrorCount()
	if parseLog.HasErrors() {
		// "generation runs only over a cleanly analyzed tree" (spec.md
		// §7); a malformed parse never reaches the analyzer.
		return res
	}

	var semaLog logger.Log
	registry := zsymbols.NewRegistry()
	analyzer := zsema.NewAnalyzer(&semaLog, registry)
	analyzer.Analyze(prog)

	res.Diagnostics = append(res.Diagnostics, toDiagnostics(&semaLog)...)
	res.SemaErrors = semaLog.ErrorCount()
	if semaLog.HasErrors() {
		return res
	}

	baseName := opts.BaseName
	if baseName == "" {
		baseName = "main"
	}
	out := zemit.EmitProgram(prog, registry, opts.SourcePath, baseName)
	res.Header = out.Header
	res.Source = out.Source
	return res
}

func toDiagnostics(log *logger.Log) []Diagnostic {
	msgs := log.Msgs()
	out := make([]Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		phase := "semantic"
		if m.Phase == "parse" {
			phase = "parse"
		}
		if m.Kind == logger.Note {
			continue
		}
		out = append(out, Diagnostic{Phase: phase, Line: m.Loc.Line, Text: m.Text})
	}
	return out
}
