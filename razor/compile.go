package razor

import "io"

// Options configures a compilation.
type Options struct {
	// Components classifies tag names as component-like. A nil registry
	// treats every tag as a plain element, so every structured construct
	// lowers back to markup.
	Components ComponentRegistry
}

// Result is the outcome of compiling one document.
type Result struct {
	// Doc is the structured intermediate tree.
	Doc *Node

	// Diags are all user-facing diagnostics in the tree, in document
	// order.
	Diags []NodeDiag
}

// Compile runs the front-end passes over one template: split the source
// into markup fragments and holes, structure the markup into an element
// tree, then lower orphan constructs. Recoverable problems surface in
// Result.Diags; an *InternalError return means this document was abandoned
// (other documents in a batch are unaffected).
func Compile(r io.Reader, name string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	doc, err := ParseTemplate(r, name)
	if err != nil {
		return nil, err
	}
	if err := StructureMarkup(doc); err != nil {
		return nil, err
	}
	if err := LowerOrphanConstructs(doc, opts.Components); err != nil {
		return nil, err
	}
	return &Result{Doc: doc, Diags: CollectDiags(doc)}, nil
}
