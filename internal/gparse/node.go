// Package gparse tokenizes and parses the informal grammar source language
// described alongside the core grammar package: ALLCAPS identifiers for
// terminals, uppercase-leading mixed-case identifiers for nonterminals,
// "->" to introduce a right-hand side, "|" to separate alternatives, ";" to
// terminate a production, and the keyword "e" for an epsilon alternative.
//
// This package is an external collaborator: internal/grammar never imports
// it. It produces a tree of Node values that satisfies grammar.TreeNode,
// and nothing in internal/grammar needs to know gparse exists.
package gparse

import "github.com/dekarrin/slrgen/internal/grammar"

// Node is the concrete parse tree type gparse builds. It implements
// grammar.TreeNode so a *Node can be handed directly to grammar.NewFromTree.
type Node struct {
	Label    string
	Children []Node
}

// NodeLabel implements grammar.TreeNode.
func (n Node) NodeLabel() string {
	return n.Label
}

// NodeChildren implements grammar.TreeNode.
func (n Node) NodeChildren() []grammar.TreeNode {
	if n.Children == nil {
		return nil
	}
	out := make([]grammar.TreeNode, len(n.Children))
	for i := range n.Children {
		out[i] = n.Children[i]
	}
	return out
}

func leafNode(label string) Node {
	return Node{Label: label}
}

func termNode(name string) Node {
	return Node{Label: "Term", Children: []Node{leafNode(name)}}
}

func nonTermNode(name string) Node {
	return Node{Label: "NonTerm", Children: []Node{leafNode(name)}}
}

func emptyNode() Node {
	return Node{Label: "Empty", Children: []Node{leafNode("")}}
}
