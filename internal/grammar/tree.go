package grammar

// TreeNode is the shape the grammar-construction pipeline needs from the
// parse tree the external grammar parser produces (spec.md §6). The core
// never imports the parser package itself; it only needs nodes that can
// report a label and their ordered children, so any parser that produces a
// tree of this shape can feed NewFromTree.
type TreeNode interface {
	// NodeLabel is one of "Grammar", "Production", "Body", "Rule",
	// "NonTerm", "Term", "Empty", or a leaf's literal text.
	NodeLabel() string

	// NodeChildren returns this node's children in left-to-right order, or
	// nil for a leaf.
	NodeChildren() []TreeNode
}
