package pcomb

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrUnexpectedResultType = errors.New("unexpected result type")
	ErrNilInput             = errors.New("input is nil")
)

///////////////////////////////////////////////////////////////////////////////
// Input
///////////////////////////////////////////////////////////////////////////////

// Input is the data a parser runs over. It is implemented by Text, whose
// cursor unit is a character, and Binary, whose cursor unit is a bit.
//
// Inputs are shared by every State of a run and are never mutated.
type Input interface {
	// Len returns the length of the input in cursor units.
	Len() int
	isInput()
}

// Text is character-addressable input.
type Text []rune

// NewText returns the Text for s.
func NewText(s string) Text {
	return Text([]rune(s))
}

func (t Text) Len() int       { return len(t) }
func (t Text) String() string { return string(t) }
func (Text) isInput()         {}

// Binary is bit-addressable input. Bits are numbered most significant first
// within each byte.
type Binary []byte

func (b Binary) Len() int { return len(b) * bitsPerByte }
func (Binary) isInput()   {}

///////////////////////////////////////////////////////////////////////////////
// ParseError
///////////////////////////////////////////////////////////////////////////////

// ParseError is the single failure kind of a parse: a human readable message
// and the cursor position at which it was raised.
type ParseError struct {
	Message string
	Index   int
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	return pe.Message
}

///////////////////////////////////////////////////////////////////////////////
// State
///////////////////////////////////////////////////////////////////////////////

// State is an immutable snapshot of a parse. Parsers receive a State by value
// and return a new one; they never modify the State they were given.
//
// Err is non-nil iff the parse has failed. Once failed, Index and Result are
// frozen for the rest of the run.
type State struct {
	Input  Input
	Index  int
	Result any
	Err    *ParseError

	log *zap.Logger
}

// Failed reports whether the parse has failed.
func (s State) Failed() bool {
	return s.Err != nil
}

// ErrorMessage returns the failure message, or "" if the parse has not failed.
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message
}

// Error returns the failure as an error, or nil. It avoids the typed-nil
// trap of returning s.Err directly as an error.
func (s State) Error() error {
	if s.Err == nil {
		return nil
	}
	return s.Err
}

func (s State) logger() *zap.Logger {
	if s.log == nil {
		return nopLogger
	}
	return s.log
}

func updateState(s State, index int, result any) State {
	s.Index = index
	s.Result = result
	return s
}

func updateResult(s State, result any) State {
	s.Result = result
	return s
}

func updateError(s State, msg string) State {
	s.Err = &ParseError{Message: msg, Index: s.Index}
	return s
}

func updateErrorf(s State, format string, args ...any) State {
	return updateError(s, fmt.Sprintf(format, args...))
}

// ResultOf returns the result of s as a T.
//
// It returns the state's *ParseError if the parse failed, and an error
// wrapping ErrUnexpectedResultType if the result is not a T.
func ResultOf[T any](s State) (T, error) {
	var zero T
	if s.Failed() {
		return zero, s.Err
	}
	v, ok := s.Result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, got %T", ErrUnexpectedResultType, zero, s.Result)
	}
	return v, nil
}
