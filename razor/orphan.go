package razor

import "strings"

// ComponentRegistry answers whether a tag name matched a component-like
// rule set. The classification rules live outside the compiler core; passes
// only ever ask this question.
type ComponentRegistry interface {
	IsComponent(tag string) bool
}

// TagSet is a ComponentRegistry backed by a case-insensitive set of tag
// names.
type TagSet map[string]struct{}

var _ ComponentRegistry = TagSet(nil)

func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[strings.ToLower(t)] = struct{}{}
	}
	return s
}

func (s TagSet) IsComponent(tag string) bool {
	_, ok := s[strings.ToLower(tag)]
	return ok
}

// LowerOrphanConstructs rewrites every structured construct that did not
// turn out to be component-like back into a plain element, flattening its
// attribute sub-nodes and splicing its body children in place.
//
// The pass runs in two phases: a read-only walk that records
// (parent, child index) pairs in leaf-first order, then a rewrite phase
// that replaces each recorded child. Rewriting a construct reuses its
// value and body subtrees, so entries recorded below it stay valid.
func LowerOrphanConstructs(doc *Node, reg ComponentRegistry) error {
	type rewrite struct {
		parent *Node
		idx    int
	}

	var found []rewrite
	var walk func(n *Node)
	walk = func(n *Node) {
		for i, c := range n.Children {
			walk(c)
			if c.Kind == KindConstruct && (reg == nil || !reg.IsComponent(c.Tag)) {
				found = append(found, rewrite{parent: n, idx: i})
			}
		}
	}
	walk(doc)

	for _, r := range found {
		el, err := lowerConstruct(r.parent.Children[r.idx])
		if err != nil {
			return err
		}
		r.parent.Children[r.idx] = el
	}
	return nil
}

// lowerConstruct builds the replacement element for one orphan construct.
func lowerConstruct(c *Node) (*Node, error) {
	var body *Node
	el := &Node{
		Kind:   KindElement,
		Tag:    c.Tag,
		Source: c.Source,
		Diags:  append([]*Diag(nil), c.Diags...),
	}

	for _, sub := range c.Children {
		switch sub.Kind {
		case KindAttribute:
			el.Children = append(el.Children, &Node{
				Kind:     KindAttribute,
				AttrName: sub.AttrName,
				Source:   sub.Source,
				Diags:    append([]*Diag(nil), sub.Diags...),
				Children: sub.Children,
			})
		case KindFragment:
			if body != nil {
				return nil, internalf("lower-orphans", "construct <%s> has more than one body", c.Tag)
			}
			body = sub
		default:
			return nil, internalf("lower-orphans", "construct <%s> has unexpected %s sub-node", c.Tag, sub.Kind)
		}
	}

	// The upstream matcher guarantees every construct carries exactly one
	// body.
	if body == nil {
		return nil, internalf("lower-orphans", "construct <%s> is missing its body", c.Tag)
	}

	el.Children = append(el.Children, body.Children...)
	return el, nil
}
