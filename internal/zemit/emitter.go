// Package zemit turns an analyzed zast.Program into C99 header and
// source text, per spec.md §4.4 (expression emitter) and §4.5
// (type-layout emitter). The single-buffer-then-join structure and
// the one-switch-per-node-kind visiting style are adapted from
// esbuild's internal/js_printer, trimmed to the handful of productions
// a statement-expression-based C target needs.
package zemit

import (
	"fmt"

	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

type stringLit struct {
	id    int
	value string
}

// Emitter holds all state threaded through one compilation's emission
// pass. Per spec.md §5 the compiler is single-threaded end to end, so
// unlike zsema.Analyzer nothing here needs synchronization.
type Emitter struct {
	reg *zsymbols.Registry

	header *buffer
	source *buffer
	body   *buffer // function bodies, joined into source after statics/externs

	tempCounter int
	arc         []*arcScope
	narrowed    map[string]bool

	// currentLoop* mirror the analyzer's single saved/restored loop
	// slot (spec.md §9, "a single current loop result slot"): only one
	// is live at a time, saved on entry to a nested loop and restored
	// on exit.
	currentLoopResultVar     string
	currentLoopResultType    *ztype.Type
	currentLoopBreakLabel    string
	currentLoopContinueLabel string

	stringLits   []stringLit
	seenStringID map[int]bool

	// funcSigs records every declared/extern function's parameter types
	// by name, built in a pre-pass so call sites can apply spec.md
	// §4.4.6's coercion rule without needing the analyzer's discarded
	// scope chain.
	funcSigs map[string][]*ztype.Type
}

// Result is the emitter's output: the header text and the source text.
type Result struct {
	Header string
	Source string
}

// EmitProgram runs both emitters over prog (which must already be
// cleanly analyzed — the emitter never re-validates) and reg (the
// registry populated by that same analysis pass).
func EmitProgram(prog *zast.Program, reg *zsymbols.Registry, sourcePath, baseName string) Result {
	e := &Emitter{
		reg:          reg,
		header:       &buffer{},
		source:       &buffer{},
		body:         &buffer{},
		narrowed:     make(map[string]bool),
		seenStringID: make(map[int]bool),
		funcSigs:     make(map[string][]*ztype.Type),
	}
	e.collectFuncSigs(prog)

	guard := "__ZN_" + sanitize(baseName) + "_H__"
	e.header.line("#ifndef %s", guard)
	e.header.line("#define %s", guard)
	e.header.blank()
	e.header.line("#include \"zinc_runtime.h\"")
	e.header.blank()

	e.emitTypeLayout()

	for i := range prog.Stmts {
		e.emitTopLevelStmt(&prog.Stmts[i], sourcePath)
	}

	e.header.blank()
	e.header.line("#endif // %s", guard)

	e.source.line("#include \"%s.h\"", baseName)
	e.source.blank()
	e.emitStringStatics()
	e.source.blank()
	e.source.sb.WriteString(e.body.String())

	return Result{Header: e.header.String(), Source: e.source.String()}
}

func (e *Emitter) collectFuncSigs(prog *zast.Program) {
	for i := range prog.Stmts {
		switch d := prog.Stmts[i].Data.(type) {
		case *zast.SFuncDef:
			e.recordFuncSig(d.Name, d.Params)
		case *zast.SExternFunc:
			e.recordFuncSig(d.Name, d.Params)
		case *zast.SExternBlock:
			for j := range d.Decls {
				if ef, ok := d.Decls[j].Data.(*zast.SExternFunc); ok {
					e.recordFuncSig(ef.Name, ef.Params)
				}
			}
		}
	}
}

func (e *Emitter) recordFuncSig(name string, params []zast.ParamDecl) {
	types := make([]*ztype.Type, len(params))
	for i, p := range params {
		types[i] = e.resolveType(p.TypeAnnotation)
	}
	e.funcSigs[name] = types
}

func (e *Emitter) nextTemp(prefix string) string {
	n := e.tempCounter
	e.tempCounter++
	return fmt.Sprintf("__%s_%d", prefix, n)
}

func (e *Emitter) emitTopLevelStmt(s *zast.Stmt, sourcePath string) {
	switch d := s.Data.(type) {
	case *zast.STypeDef:
		// Already materialized by emitTypeLayout from the registry.

	case *zast.SFuncDef:
		e.emitFuncDef(s.Loc.Line, d, sourcePath)

	case *zast.SExternBlock:
		for i := range d.Decls {
			e.emitTopLevelStmt(&d.Decls[i], sourcePath)
		}

	case *zast.SExternFunc:
		e.header.line("%s %s(%s);", cTypeName(e.resolveType(d.ReturnType)), d.Name, e.formatParams(d.Params))

	case *zast.SExternVar, *zast.SExternLet:
		// extern bindings resolve to host-linked symbols; the header
		// only needs the declaration, which the analyzer's resolved
		// type already captured on the symbol (not reachable from
		// here without the registry, so the CLI's linker step, not
		// codegen, is responsible for satisfying it).

	default:
		// A bare top-level expression/decl statement outside any
		// function is not valid Zinc (spec.md implies every
		// executable statement lives inside a function body), but the
		// emitter stays defensive rather than panicking on malformed
		// input it wasn't asked to validate.
	}
}

func (e *Emitter) formatParams(params []zast.ParamDecl) string {
	if len(params) == 0 {
		return "void"
	}
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %s", cTypeName(e.resolveType(p.TypeAnnotation)), p.Name)
	}
	return out
}

func (e *Emitter) emitStringStatics() {
	for _, lit := range e.stringLits {
		e.source.line("static ZnString %s = { -1, %d, %s };", stringLitCName(lit.id), len(lit.value), quoteCString(lit.value))
	}
}

func stringLitCName(id int) string { return fmt.Sprintf("__zn_strlit_%d", id) }

func quoteCString(s string) string {
	out := []byte{'"'}
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, string(r)...)
		}
	}
	out = append(out, '"')
	return string(out)
}
