package gparse

import (
	"unicode"

	"github.com/dekarrin/slrgen/internal/gerr"
)

// rawRule and rawProduction are the parser's intermediate representation:
// plain symbol names, not yet classified as Term or NonTerm. Classification
// needs every production's left-hand side to be known first (a name used as
// some lhs is always a nonterminal, regardless of how it is cased), so it
// happens in a second pass over the whole grammar rather than symbol by
// symbol during parsing.
type rawRule struct {
	epsilon bool
	symbols []string
}

type rawProduction struct {
	lhs   string
	rules []rawRule
}

type parser struct {
	lex *Lexer
	cur Token
}

// ParseGrammar tokenizes and parses src, the informal grammar source
// language documented in this package's doc comment, into a Node tree
// matching the shape grammar.NewFromTree expects.
func ParseGrammar(src string) (Node, error) {
	p := &parser{lex: NewLexer(src)}
	if err := p.advance(); err != nil {
		return Node{}, err
	}

	var prods []rawProduction
	for p.cur.Kind != TokenEOF {
		prod, err := p.parseProduction()
		if err != nil {
			return Node{}, err
		}
		prods = append(prods, prod)
	}
	if len(prods) == 0 {
		return Node{}, gerr.Malformedf("grammar source contains no productions")
	}

	lhsSet := make(map[string]bool, len(prods))
	for _, p := range prods {
		lhsSet[p.lhs] = true
	}

	return buildTree(prods, lhsSet), nil
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expect(k TokenKind) (Token, error) {
	if p.cur.Kind != k {
		return Token{}, gerr.Malformedf(
			"line %d, column %d: expected %s, found %s",
			p.cur.Pos.Line, p.cur.Pos.Column, k, p.cur.Kind,
		)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) parseProduction() (rawProduction, error) {
	lhsTok, err := p.expect(TokenIdent)
	if err != nil {
		return rawProduction{}, err
	}
	if _, err := p.expect(TokenArrow); err != nil {
		return rawProduction{}, err
	}
	rules, err := p.parseRules()
	if err != nil {
		return rawProduction{}, err
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return rawProduction{}, err
	}
	return rawProduction{lhs: lhsTok.Text, rules: rules}, nil
}

func (p *parser) parseRules() ([]rawRule, error) {
	first, err := p.parseRule()
	if err != nil {
		return nil, err
	}
	rules := []rawRule{first}

	for p.cur.Kind == TokenPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, next)
	}
	return rules, nil
}

func (p *parser) parseRule() (rawRule, error) {
	if p.cur.Kind == TokenEpsilon {
		if err := p.advance(); err != nil {
			return rawRule{}, err
		}
		return rawRule{epsilon: true}, nil
	}

	var symbols []string
	for p.cur.Kind == TokenIdent {
		symbols = append(symbols, p.cur.Text)
		if err := p.advance(); err != nil {
			return rawRule{}, err
		}
	}
	if len(symbols) == 0 {
		return rawRule{}, gerr.Malformedf(
			"line %d, column %d: expected a symbol or 'e', found %s",
			p.cur.Pos.Line, p.cur.Pos.Column, p.cur.Kind,
		)
	}
	return rawRule{symbols: symbols}, nil
}

// buildTree converts the parsed productions into the Node shape
// grammar.NewFromTree expects, classifying every rhs symbol name against
// lhsSet along the way.
func buildTree(prods []rawProduction, lhsSet map[string]bool) Node {
	prodNodes := make([]Node, 0, len(prods))
	for _, rp := range prods {
		ruleNodes := make([]Node, 0, len(rp.rules))
		for _, r := range rp.rules {
			if r.epsilon {
				ruleNodes = append(ruleNodes, Node{Label: "Rule", Children: []Node{emptyNode()}})
				continue
			}
			symNodes := make([]Node, 0, len(r.symbols))
			for _, name := range r.symbols {
				symNodes = append(symNodes, classify(name, lhsSet))
			}
			ruleNodes = append(ruleNodes, Node{Label: "Rule", Children: symNodes})
		}
		prodNodes = append(prodNodes, Node{
			Label:    "Production",
			Children: []Node{nonTermNode(rp.lhs), {Label: "Body", Children: ruleNodes}},
		})
	}
	return Node{Label: "Grammar", Children: prodNodes}
}

// classify decides whether name denotes a terminal or a nonterminal. A name
// that is some production's left-hand side is always a nonterminal; any
// other name is a terminal if it contains no lowercase letter (the ALLCAPS
// convention; digits and underscores are allowed), and otherwise treated as an (undeclared)
// nonterminal, which grammar.NewFromTree will reject with
// gerr.ErrUndefinedNonterminal.
func classify(name string, lhsSet map[string]bool) Node {
	if lhsSet[name] {
		return nonTermNode(name)
	}
	if isAllUpper(name) {
		return termNode(name)
	}
	return nonTermNode(name)
}

func isAllUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
