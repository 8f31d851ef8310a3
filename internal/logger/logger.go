// Package logger collects the diagnostics produced while lexing,
// parsing, and analyzing a single Zinc source file. It is modeled on
// esbuild's internal/logger package but trimmed down to the needs of
// a single-file, single-threaded compiler: no async message callback,
// no multi-file source map, no summary table. Errors are never fatal
// on their own — the analyzer keeps going so it can surface as many
// as possible per spec.
package logger

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/fatih/color"
)

// Kind distinguishes an error from a note attached to one.
type Kind uint8

const (
	Error Kind = iota
	Note
)

func (k Kind) String() string {
	if k == Note {
		return "note"
	}
	return "error"
}

// Loc is a 1-based source line number. Zinc's AST carries only line
// numbers (see spec.md §3, "ASTNode ... source line"), not byte
// offsets or columns, so that is all a Loc tracks.
type Loc struct {
	Line int
}

// Msg is a single diagnostic. Phase labels which count line (spec.md
// §6's "parse error(s)" vs "semantic error(s)") this message belongs
// to; the zero value is "semantic" so existing call sites (the
// analyzer) don't need to say so explicitly.
type Msg struct {
	Kind  Kind
	Loc   Loc
	Text  string
	Phase string
}

func (m Msg) phaseLabel() string {
	switch m.Phase {
	case "parse":
		return "Parse"
	default:
		return "Semantic"
	}
}

func (m Msg) String() string {
	if m.Kind == Note {
		return fmt.Sprintf("  note: %s", m.Text)
	}
	return fmt.Sprintf("%s error at line %d: %s", m.phaseLabel(), m.Loc.Line, m.Text)
}

// Log accumulates diagnostics for one compilation. The zero value is
// ready to use and defaults to the "semantic" phase. A Log is not safe
// for concurrent use by multiple goroutines writing different phases
// at once, but spec.md §5 makes that moot: the compiler is
// single-threaded end to end.
type Log struct {
	mu    sync.Mutex
	msgs  []Msg
	phase string
}

// NewParseLog returns a Log whose messages are labeled "parse" instead
// of the default "semantic", matching spec.md §6's `\d+ parse
// error(s)` regex contract for lexer/parser diagnostics.
func NewParseLog() *Log {
	return &Log{phase: "parse"}
}

// AddError records a diagnostic at the given source line. It never
// aborts analysis; callers keep walking the AST afterward.
func (l *Log) AddError(line int, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, Msg{Kind: Error, Loc: Loc{Line: line}, Text: fmt.Sprintf(format, args...), Phase: l.phase})
}

// AddErrorWithNote records an error plus a supplementary note, both
// attributed to the same line.
func (l *Log) AddErrorWithNote(line int, text string, note string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs,
		Msg{Kind: Error, Loc: Loc{Line: line}, Text: text, Phase: l.phase},
		Msg{Kind: Note, Loc: Loc{Line: line}, Text: note, Phase: l.phase},
	)
}

// HasErrors reports whether any error-kind message was recorded.
func (l *Log) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if m.Kind == Error {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-kind messages, the value
// that feeds the "<N> semantic error(s) encountered." summary line.
func (l *Log) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.msgs {
		if m.Kind == Error {
			n++
		}
	}
	return n
}

// Msgs returns a stable, line-ordered copy of everything recorded so
// far. Ordering is by line number then insertion order, so repeated
// runs over the same AST produce identical output.
func (l *Log) Msgs() []Msg {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Msg, len(l.msgs))
	copy(out, l.msgs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Loc.Line < out[j].Loc.Line })
	return out
}

// PrintSummary writes every message to os.Stderr, then writes the
// "<N> semantic error(s) encountered." (or "parse") line spec.md §6/§7
// requires for tooling consumption to stdout. Colorized prefixes are only
// ever color.Output's concern, never the text content itself, so the
// plain-text contract holds whether or not color is enabled.
func (l *Log) PrintSummary(useColor bool) {
	errColor := color.New(color.FgRed, color.Bold)
	noteColor := color.New(color.FgCyan)
	errColor.DisableColor()
	noteColor.DisableColor()
	if useColor {
		errColor.EnableColor()
		noteColor.EnableColor()
	}

	for _, m := range l.Msgs() {
		switch m.Kind {
		case Error:
			errColor.Fprintf(os.Stderr, "%s error at line %d: ", m.phaseLabel(), m.Loc.Line)
			fmt.Fprintln(os.Stderr, m.Text)
		case Note:
			noteColor.Fprintln(os.Stderr, m.String())
		}
	}

	phase := l.phase
	if phase == "" {
		phase = "semantic"
	}
	fmt.Printf("%d %s error(s) encountered.\n", l.ErrorCount(), phase)
}
