package razor

import "fmt"

// ClosureWriter receives deferred-closure boundaries from a ScopeStack.
// OpenClosure is called just before the first child of a component scope is
// emitted; target is the builder name that captured child content writes
// to. CloseClosure is called with the same target when the scope closes.
type ClosureWriter interface {
	OpenClosure(target string)
	CloseClosure(target string)
}

// ScopeStack tracks nested element and component scopes for one emission
// traversal of one document. Component scopes defer their child content
// into a closure, opened lazily when the first child arrives so that
// childless components never emit a capture block.
//
// The caller must keep Open/Close calls balanced and wrap the whole
// document in a single root scope. Calls on an empty or fully unwound
// stack are compiler defects: they panic with an *InternalError, which the
// emitter recovers at its boundary.
type ScopeStack struct {
	frames []scopeFrame
	depth  int
	w      ClosureWriter
	done   bool
}

type scopeFrame struct {
	tag         string
	isComponent bool
	childCount  int
	closure     *closure
}

// closure is the handle of an active deferred-closure scope. CloseScope
// consumes it explicitly; there is no implicit finalization.
type closure struct {
	target string
}

func NewScopeStack(w ClosureWriter) *ScopeStack {
	return &ScopeStack{w: w}
}

// builderName returns the emission target name for a nesting depth. Depth
// zero is the outermost target; each open closure adds one. Naming by depth
// keeps targets deterministic and collision-free regardless of sibling
// counts.
func builderName(depth int) string {
	if depth == 0 {
		return "__builder"
	}
	return fmt.Sprintf("__builder%d", depth+1)
}

// Target returns the builder name content is currently written to.
func (s *ScopeStack) Target() string {
	return builderName(s.depth)
}

// OpenScope pushes a new scope for an element or component tag.
func (s *ScopeStack) OpenScope(tag string, isComponent bool) {
	if s.done {
		panic(internalf("emit", "scope stack used after unwinding"))
	}
	s.frames = append(s.frames, scopeFrame{tag: tag, isComponent: isComponent})
}

// IncrementChildCount records one child emitted into the current scope. The
// first child of a component scope opens its deferred closure.
func (s *ScopeStack) IncrementChildCount() {
	if s.done || len(s.frames) == 0 {
		panic(internalf("emit", "child emitted outside any open scope"))
	}
	f := &s.frames[len(s.frames)-1]
	if f.isComponent && f.childCount == 0 {
		s.depth++
		f.closure = &closure{target: builderName(s.depth)}
		s.w.OpenClosure(f.closure.target)
	}
	f.childCount++
}

// CloseScope pops the current scope, closing its deferred closure if one
// was opened.
func (s *ScopeStack) CloseScope() {
	if s.done || len(s.frames) == 0 {
		panic(internalf("emit", "close on empty scope stack"))
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if f.closure != nil {
		s.w.CloseClosure(f.closure.target)
		f.closure = nil
		s.depth--
	}
	if len(s.frames) == 0 {
		s.done = true
	}
}
