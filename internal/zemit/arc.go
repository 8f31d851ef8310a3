package zemit

import "github.com/redodson01/zinc/internal/ztype"

// arcBinding is one tracked, released-on-exit binding inside an
// emitter scope.
type arcBinding struct {
	cName       string
	t           *ztype.Type
	hasRCFields bool
}

// arcScope mirrors one of the analyzer's zsymbols.Scope pushes on the
// emitter side (spec.md §9: "maintain a linked stack of scopes with a
// flag marking loop boundaries"). Only bindings that actually need a
// release are recorded; declarations of non-reference, non-RC value
// kinds never enter this list.
type arcScope struct {
	bindings     []arcBinding
	isLoopBoundary bool
}

func (e *Emitter) pushARCScope(isLoopBoundary bool) {
	e.arc = append(e.arc, &arcScope{isLoopBoundary: isLoopBoundary})
}

func (e *Emitter) popARCScope(b *buffer) {
	s := e.arc[len(e.arc)-1]
	e.arc = e.arc[:len(e.arc)-1]
	e.releaseScopeBindings(b, s)
}

func (e *Emitter) track(cName string, t *ztype.Type, hasRCFields bool) {
	if !isTrackedBinding(t, hasRCFields) {
		return
	}
	top := e.arc[len(e.arc)-1]
	top.bindings = append(top.bindings, arcBinding{cName: cName, t: t, hasRCFields: hasRCFields})
}

// releaseScopeBindings emits one release call per tracked binding, in
// reverse declaration order, per spec.md §4.4.2 rule 2.
func (e *Emitter) releaseScopeBindings(b *buffer, s *arcScope) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		bind := s.bindings[i]
		if call := releaseCallFor(bind.t, bind.cName, bind.hasRCFields); call != "" {
			b.line("%s;", call)
		}
	}
}

// releaseThroughLoopBoundary implements spec.md §4.4.2 rule 5 for
// `break`/`continue`: release every binding from the innermost scope
// up to and including the nearest loop-boundary scope.
func (e *Emitter) releaseThroughLoopBoundary(b *buffer) {
	for i := len(e.arc) - 1; i >= 0; i-- {
		s := e.arc[i]
		e.releaseScopeBindings(b, s)
		if s.isLoopBoundary {
			break
		}
	}
}

// releaseAllScopes implements rule 5's `return` case: release every
// enclosing scope, innermost first.
func (e *Emitter) releaseAllScopes(b *buffer) {
	for i := len(e.arc) - 1; i >= 0; i-- {
		e.releaseScopeBindings(b, e.arc[i])
	}
}
