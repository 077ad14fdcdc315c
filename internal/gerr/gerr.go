// Package gerr holds the error taxonomy shared by the grammar and gparse
// packages. Notably, it contains the Error type, which can be created
// with one or more 'cause' errors. Calling errors.Is() on this Error type with
// an argument consisting of any of the errors it has as a cause will return
// true.
package gerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGrammar means a parse tree node had an unexpected label or
	// arity where a grammar node was expected.
	ErrMalformedGrammar = errors.New("grammar source is malformed")

	// ErrUndefinedNonterminal means a production's RHS references a
	// nonterminal with no productions of its own.
	ErrUndefinedNonterminal = errors.New("nonterminal has no productions")

	// ErrTableConflict means two distinct actions were derived for the same
	// (state, symbol) pair while building the SLR table.
	ErrTableConflict = errors.New("shift/reduce or reduce/reduce conflict")
)

// Error is a typed error returned by the grammar construction pipeline. It
// carries a human message naming the offending symbol or state, along with
// one or more causes so that errors.Is can match against the sentinels above.
//
// Error should not be used directly; call New to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error, concatenated with the
// result of calling Error() on its first cause if one is defined.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns the causes of Error, for use with errors.Is/errors.As.
//
// This function is for interaction with the errors API. It will only be used
// in Go version 1.20 and later; 1.19 will default to use of Error.Is when
// calling errors.Is on the Error.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether Error either is itself the given target error, or one of
// its causes is.
//
// This function is for interaction with the errors API.
func (e Error) Is(target error) bool {
	if errTarget, ok := target.(Error); ok {
		if e.msg == errTarget.msg && len(e.cause) == len(errTarget.cause) {
			allCausesEqual := true
			for i := range e.cause {
				if e.cause[i] != errTarget.cause[i] {
					allCausesEqual = false
					break
				}
			}
			if allCausesEqual {
				return true
			}
		}
	}

	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

// New creates a new Error with the given message and causes. Providing cause
// errors is not required, but doing so causes errors.Is(err, cause) to return
// true for any of them.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}

// Malformedf builds an ErrMalformedGrammar-wrapping Error naming the
// offending node label.
func Malformedf(format string, a ...interface{}) error {
	return New(fmt.Sprintf(format, a...), ErrMalformedGrammar)
}

// Undefinedf builds an ErrUndefinedNonterminal-wrapping Error naming the
// offending symbol.
func Undefinedf(format string, a ...interface{}) error {
	return New(fmt.Sprintf(format, a...), ErrUndefinedNonterminal)
}

// Conflictf builds an ErrTableConflict-wrapping Error naming the offending
// state and symbol.
func Conflictf(format string, a ...interface{}) error {
	return New(fmt.Sprintf(format, a...), ErrTableConflict)
}
