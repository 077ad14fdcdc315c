package grammar

import "testing"

// fakeNode is a minimal TreeNode used to build parse trees by hand in
// tests, without depending on an actual parser.
type fakeNode struct {
	label    string
	children []TreeNode
}

func (n *fakeNode) NodeLabel() string       { return n.label }
func (n *fakeNode) NodeChildren() []TreeNode { return n.children }

func leaf(label string) TreeNode {
	return &fakeNode{label: label}
}

func node(label string, children ...TreeNode) TreeNode {
	return &fakeNode{label: label, children: children}
}

func term(name string) TreeNode {
	return node("Term", leaf(name))
}

func nonTerm(name string) TreeNode {
	return node("NonTerm", leaf(name))
}

func rule(symbols ...TreeNode) TreeNode {
	return node("Rule", symbols...)
}

func epsilonRule() TreeNode {
	return node("Rule", node("Empty"))
}

func production(lhs string, rules ...TreeNode) TreeNode {
	return node("Production", nonTerm(lhs), node("Body", rules...))
}

func grammarTree(prods ...TreeNode) TreeNode {
	return node("Grammar", prods...)
}

// dragonExprGrammar builds the classic expression grammar (Aho/Sethi/Ullman
// 4.46's running example):
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
func dragonExprGrammar(t *testing.T) *Grammar {
	t.Helper()
	g, err := NewFromTree(grammarTree(
		production("E",
			rule(nonTerm("E"), term("+"), nonTerm("T")),
			rule(nonTerm("T")),
		),
		production("T",
			rule(nonTerm("T"), term("*"), nonTerm("F")),
			rule(nonTerm("F")),
		),
		production("F",
			rule(term("("), nonTerm("E"), term(")")),
			rule(term("id")),
		),
	))
	if err != nil {
		t.Fatalf("building dragon expr grammar: %v", err)
	}
	return g
}
