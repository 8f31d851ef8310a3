// Package zsema implements spec.md §4.3: type inference, lvalue
// validation, optional narrowing, loop-result accumulation, and
// anonymous type registration over an already-parsed zast.Program.
// Errors are collected in a logger.Log and never abort analysis — the
// analyzer keeps walking so it can surface as many as possible in one
// pass (spec.md §7).
//
// The shape of visitExpr/visitStmt — a single switch over the node's
// concrete payload type, mutating the node in place — is adapted from
// esbuild's internal/js_parser.Parser visiting methods.
package zsema

import (
	"regexp"

	"github.com/redodson01/zinc/internal/logger"
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

// Analyzer holds the mutable state spec.md §4.2 describes: a scope
// stack, the process-wide struct/class registry, and the three
// transient counters/slots (in_loop depth, in_function flag, current
// loop-result type).
type Analyzer struct {
	log      *logger.Log
	registry *zsymbols.Registry
	scope    *zsymbols.Scope

	inLoop          int
	inFunction      bool
	currentFuncSym  *zsymbols.Symbol
	loopResultType  *ztype.Type
	nextStringID    int
}

// NewAnalyzer returns an Analyzer ready to run over one program. The
// registry is exposed to callers (the emitter needs it) rather than
// owned privately, since spec.md §4.2 describes it as "conceptually
// process-wide within a single compilation" rather than the
// analyzer's private state.
func NewAnalyzer(log *logger.Log, registry *zsymbols.Registry) *Analyzer {
	return &Analyzer{
		log:      log,
		registry: registry,
		scope:    zsymbols.NewScope(nil, zsymbols.ScopeBlock),
	}
}

// Registry returns the struct/class registry populated during
// analysis, for the type-layout emitter to walk.
func (a *Analyzer) Registry() *zsymbols.Registry { return a.registry }

// Analyze walks the whole program, attaching resolved types and
// marker flags to every reachable node.
func (a *Analyzer) Analyze(prog *zast.Program) {
	for i := range prog.Stmts {
		a.analyzeStmt(&prog.Stmts[i])
	}
}

func (a *Analyzer) pushScope(kind zsymbols.ScopeKind) {
	a.scope = zsymbols.NewScope(a.scope, kind)
}

func (a *Analyzer) popScope() {
	a.scope = a.scope.Parent
}

// --- statements ---

func (a *Analyzer) analyzeStmt(s *zast.Stmt) {
	switch d := s.Data.(type) {
	case *zast.SExprStmt:
		a.analyzeExpr(&d.Value)

	case *zast.SDecl:
		a.analyzeDecl(s.Loc.Line, d)

	case *zast.SBreak:
		a.analyzeLoopExit(s.Loc.Line, "break", d.HasValue, &d.Value)

	case *zast.SContinue:
		a.analyzeLoopExit(s.Loc.Line, "continue", d.HasValue, &d.Value)

	case *zast.SReturn:
		a.analyzeReturn(s.Loc.Line, d)

	case *zast.SFuncDef:
		a.analyzeFuncDef(s.Loc.Line, d)

	case *zast.STypeDef:
		a.analyzeTypeDef(s.Loc.Line, d)

	case *zast.SExternBlock:
		for i := range d.Decls {
			a.analyzeStmt(&d.Decls[i])
		}

	case *zast.SExternFunc:
		a.declareExternFunc(s.Loc.Line, d)

	case *zast.SExternVar:
		a.declareExternBinding(s.Loc.Line, d.Name, d.TypeAnnotation, false)

	case *zast.SExternLet:
		a.declareExternBinding(s.Loc.Line, d.Name, d.TypeAnnotation, true)
	}
}

func (a *Analyzer) analyzeDecl(line int, d *zast.SDecl) {
	a.analyzeExpr(&d.Init)

	if d.Init.ResolvedType != nil && d.Init.ResolvedType.Kind == ztype.Void {
		a.log.AddError(line, "cannot use void expression as a declaration initializer")
	}

	declaredType := ztype.Clone(d.Init.ResolvedType)
	sym := &zsymbols.Symbol{Name: d.Name, Type: declaredType, IsConst: d.IsConst()}
	if !a.scope.Declare(d.Name, sym) {
		a.log.AddError(line, "'%s' is already declared in this scope", d.Name)
	}
}

func (a *Analyzer) analyzeLoopExit(line int, verb string, hasValue bool, value *zast.Expr) {
	if a.inLoop == 0 {
		a.log.AddError(line, "'%s' used outside of a loop", verb)
	}
	if !hasValue {
		return
	}
	a.analyzeExpr(value)
	if a.loopResultType == nil {
		a.loopResultType = ztype.Clone(value.ResolvedType)
		return
	}
	if !ztype.Equals(a.loopResultType, value.ResolvedType) {
		a.log.AddError(line, "'%s' value type does not match the loop's established result type", verb)
	}
}

func (a *Analyzer) analyzeReturn(line int, d *zast.SReturn) {
	if !a.inFunction {
		a.log.AddError(line, "'return' used outside of a function")
		return
	}
	if !d.HasValue {
		return
	}
	a.analyzeExpr(&d.Value)
	// "the first non-void return in a function fixes that function's
	// return type (updated retroactively on the function symbol)."
	if a.currentFuncSym != nil && d.Value.ResolvedType != nil && d.Value.ResolvedType.Kind != ztype.Void {
		if a.currentFuncSym.Type == nil || a.currentFuncSym.Type.Kind == ztype.Void {
			a.currentFuncSym.Type = ztype.Clone(d.Value.ResolvedType)
		}
	}
}

func (a *Analyzer) analyzeFuncDef(line int, d *zast.SFuncDef) {
	paramTypes := make([]*ztype.Type, len(d.Params))
	for i, p := range d.Params {
		paramTypes[i] = a.resolveTypeInfo(p.TypeAnnotation, p.Loc.Line)
	}

	retType := ztype.New(ztype.Void)
	if d.ReturnType != nil {
		retType = a.resolveTypeInfo(d.ReturnType, line)
	}

	sym := &zsymbols.Symbol{Name: d.Name, IsFunction: true, Type: retType, ParamTypes: paramTypes}
	if !a.scope.Declare(d.Name, sym) {
		a.log.AddError(line, "'%s' is already declared in this scope", d.Name)
		return
	}

	oldInFunction, oldFuncSym := a.inFunction, a.currentFuncSym
	a.inFunction, a.currentFuncSym = true, sym

	a.pushScope(zsymbols.ScopeFunction)
	for i, p := range d.Params {
		// "parameters are immutable" (spec.md §4.3).
		a.scope.Declare(p.Name, &zsymbols.Symbol{Name: p.Name, Type: paramTypes[i], IsConst: true})
	}

	lastType := a.analyzeBlock(&d.Body)
	a.popScope()

	// If no explicit return type was given and no return statement
	// fixed one, inherit from the last expression's type.
	if d.ReturnType == nil && sym.Type.Kind == ztype.Void && lastType != nil && lastType.Kind != ztype.Void {
		sym.Type = ztype.Clone(lastType)
	}

	a.inFunction, a.currentFuncSym = oldInFunction, oldFuncSym
}

var tupleIndexFieldName = regexp.MustCompile(`^_\d+$`)

func (a *Analyzer) analyzeTypeDef(line int, d *zast.STypeDef) {
	// Two-phase registration: the name is registered before field
	// types are resolved, so a field may name the class being defined.
	// A field naming a type whose definition comes later in the source
	// is reported as an undefined type.
	def := &zsymbols.StructDef{Name: d.Name, IsClass: d.IsClass}
	if !a.registry.Register(def) {
		a.log.AddError(line, "duplicate type definition '%s'", d.Name)
		return
	}

	seen := make(map[string]bool, len(d.Fields))
	for idx := range d.Fields {
		f := &d.Fields[idx]
		if seen[f.Name] {
			a.log.AddError(f.Loc.Line, "duplicate field '%s' in '%s'", f.Name, d.Name)
			continue
		}
		seen[f.Name] = true

		if f.IsWeak && !d.IsClass {
			a.log.AddError(f.Loc.Line, "'weak' is only permitted on class fields")
		}
		fieldType := a.resolveTypeInfo(f.TypeAnnotation, f.Loc.Line)
		if f.IsWeak && fieldType.Kind != ztype.Class {
			a.log.AddError(f.Loc.Line, "'weak' is only permitted on class-typed fields")
		}
		if f.HasDefault {
			a.analyzeExpr(&f.Default)
		}
		def.Fields = append(def.Fields, zsymbols.StructFieldDef{
			Name:       f.Name,
			Type:       fieldType,
			HasDefault: f.HasDefault,
			IsConst:    f.IsConst,
			IsWeak:     f.IsWeak,
			Default:    &f.Default,
		})
	}

	def.HasRCFields = structHasRCFields(a.registry, def, map[string]bool{})
}

// structHasRCFields recurses through value-type fields to find any
// reference-kind field, per spec.md §3: "A struct has RC fields if
// any field recursively contains a reference-kind field." visiting
// guards against infinite recursion on a self-referential struct
// (only classes may be self-referential in practice, since a value
// struct containing itself has infinite size, but the guard costs
// nothing and keeps this total).
func structHasRCFields(reg *zsymbols.Registry, def *zsymbols.StructDef, visiting map[string]bool) bool {
	if visiting[def.Name] {
		return false
	}
	visiting[def.Name] = true
	for _, f := range def.Fields {
		if f.IsWeak {
			continue
		}
		if f.Type.Kind.IsReferenceKind() {
			return true
		}
		if f.Type.Kind == ztype.Struct {
			if nested, ok := reg.Lookup(f.Type.Name); ok && structHasRCFields(reg, nested, visiting) {
				return true
			}
		}
	}
	return false
}

func (a *Analyzer) declareExternFunc(line int, d *zast.SExternFunc) {
	paramTypes := make([]*ztype.Type, len(d.Params))
	for i, p := range d.Params {
		paramTypes[i] = a.resolveTypeInfo(p.TypeAnnotation, p.Loc.Line)
	}
	retType := ztype.New(ztype.Void)
	if d.ReturnType != nil {
		retType = a.resolveTypeInfo(d.ReturnType, line)
	}
	sym := &zsymbols.Symbol{Name: d.Name, IsFunction: true, IsExtern: true, Type: retType, ParamTypes: paramTypes}
	if !a.scope.Declare(d.Name, sym) {
		a.log.AddError(line, "'%s' is already declared in this scope", d.Name)
	}
}

func (a *Analyzer) declareExternBinding(line int, name string, ti *zast.TypeInfo, isConst bool) {
	t := a.resolveTypeInfo(ti, line)
	sym := &zsymbols.Symbol{Name: name, Type: t, IsConst: isConst, IsExtern: true}
	if !a.scope.Declare(name, sym) {
		a.log.AddError(line, "'%s' is already declared in this scope", name)
	}
}

// analyzeBlock analyzes every statement of a block in a fresh child
// scope and returns the resolved type of its value (the last
// statement's expression type if the last statement is an expression
// statement; Void otherwise), per spec.md §4.3.2.
func (a *Analyzer) analyzeBlock(b *zast.Block) *ztype.Type {
	a.pushScope(zsymbols.ScopeBlock)
	defer a.popScope()
	return a.analyzeBlockStmtsInCurrentScope(b)
}

// analyzeBlockStmtsInCurrentScope is analyzeBlock's body without the
// push/pop, for callers (narrowed if-branches, loop bodies) that
// already pushed the scope they want the block's statements to run
// in.
func (a *Analyzer) analyzeBlockStmtsInCurrentScope(b *zast.Block) *ztype.Type {
	var last *ztype.Type
	for i := range b.Stmts {
		a.analyzeStmt(&b.Stmts[i])
		if i == len(b.Stmts)-1 {
			if es, ok := b.Stmts[i].Data.(*zast.SExprStmt); ok {
				last = es.Value.ResolvedType
			}
		}
	}
	if last == nil {
		return ztype.New(ztype.Void)
	}
	return last
}
