package gparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Lexer_Next_basicTokens(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer(`S -> A | e ;`)

	kinds := []TokenKind{}
	for {
		tok, err := l.Next()
		if !assert.NoError(err) {
			return
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == TokenEOF {
			break
		}
	}

	assert.Equal([]TokenKind{
		TokenIdent, TokenArrow, TokenIdent, TokenPipe, TokenEpsilon, TokenSemi, TokenEOF,
	}, kinds)
}

func Test_Lexer_Next_identifierText(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer(`Expr2 PLUS`)
	first, err := l.Next()
	if !assert.NoError(err) {
		return
	}
	assert.Equal(TokenIdent, first.Kind)
	assert.Equal("Expr2", first.Text)

	second, err := l.Next()
	if !assert.NoError(err) {
		return
	}
	assert.Equal(TokenIdent, second.Kind)
	assert.Equal("PLUS", second.Text)
}

func Test_Lexer_Next_badArrowIsError(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer(`S -x`)
	_, err := l.Next()
	assert.NoError(err)
	_, err = l.Next()
	assert.Error(err)
}

func Test_Lexer_Next_unexpectedCharacterIsError(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer(`@`)
	_, err := l.Next()
	assert.Error(err)
}
