package pcomb

import (
	"fmt"

	"go.uber.org/zap"
)

var nopLogger = zap.NewNop()

///////////////////////////////////////////////////////////////////////////////
// Parser
///////////////////////////////////////////////////////////////////////////////

// StateTransformer computes the next State from the current one. It must be
// deterministic and must not modify anything reachable from its argument.
type StateTransformer func(State) State

// Parser is a named, pure transformation from one State to the next; the
// unit of composition.
//
// A Parser never runs its transformer on a failed State: failures pass
// through Apply unchanged.
type Parser struct {
	name      string
	transform StateTransformer
}

// New returns a Parser that applies fn. The name is used in trace output.
func New(name string, fn StateTransformer) *Parser {
	return &Parser{name: name, transform: fn}
}

// Name returns the parser's name.
func (p *Parser) Name() string {
	return p.name
}

// Named returns a copy of p with a different name.
func (p *Parser) Named(name string) *Parser {
	return &Parser{name: name, transform: p.transform}
}

// Apply runs the parser on s and returns the resulting State.
func (p *Parser) Apply(s State) State {
	if s.Failed() {
		return s
	}

	next := p.transform(s)

	if log := s.logger(); log.Core().Enabled(zap.DebugLevel) {
		if next.Failed() {
			log.Debug("parser failed",
				zap.String("parser", p.name),
				zap.Int("from", s.Index),
				zap.Int("index", next.Index),
				zap.String("error", next.Err.Message))
		} else {
			log.Debug("parser matched",
				zap.String("parser", p.name),
				zap.Int("from", s.Index),
				zap.Int("index", next.Index))
		}
	}
	return next
}

// Map returns a parser that replaces the result of p with f(result) when p
// succeeds. Failures are propagated unchanged.
func (p *Parser) Map(f func(any) any) *Parser {
	return New(p.name, func(s State) State {
		next := p.Apply(s)
		if next.Failed() {
			return next
		}
		return updateResult(next, f(next.Result))
	})
}

// ErrorMap returns a parser that replaces the error message of p with
// f(message, index) when p fails. Successes are propagated unchanged.
func (p *Parser) ErrorMap(f func(msg string, index int) string) *Parser {
	return New(p.name, func(s State) State {
		next := p.Apply(s)
		if !next.Failed() {
			return next
		}
		return updateError(next, f(next.Err.Message, next.Index))
	})
}

// Chain returns a parser that runs p and then the parser returned by
// f(result) from where p stopped. f is not called when p fails.
//
// Chain lets a grammar pick what to parse next based on what it has
// already parsed.
func (p *Parser) Chain(f func(any) *Parser) *Parser {
	return New(p.name, func(s State) State {
		next := p.Apply(s)
		if next.Failed() {
			return next
		}
		return f(next.Result).Apply(next)
	})
}

// MapTo is the statically typed form of Map. A result of p that is not a T
// fails the parse instead of reaching f.
func MapTo[T, U any](p *Parser, f func(T) U) *Parser {
	return New(p.name, func(s State) State {
		next := p.Apply(s)
		if next.Failed() {
			return next
		}
		v, ok := next.Result.(T)
		if !ok {
			var zero T
			return updateErrorf(next, "%s: %v: expected %T, got %T",
				p.name, ErrUnexpectedResultType, zero, next.Result)
		}
		return updateResult(next, f(v))
	})
}

///////////////////////////////////////////////////////////////////////////////
// Running
///////////////////////////////////////////////////////////////////////////////

// RunOpts configures a single run.
type RunOpts struct {
	// Logger receives a debug entry for every parser application.
	// Nil disables tracing.
	Logger *zap.Logger
}

// Run applies p to a fresh State over input and returns the final State
// verbatim. Callers inspect Failed to decide success; on failure the State
// still carries the cursor and result reached.
func Run(p *Parser, input Input) State {
	return RunWithOpts(p, input, RunOpts{})
}

// RunWithOpts is Run with options.
func RunWithOpts(p *Parser, input Input, opts RunOpts) State {
	s := State{Input: input, log: opts.Logger}
	if input == nil {
		return updateErrorf(s, "run: %v", ErrNilInput)
	}
	return p.Apply(s)
}

// Run runs p over input.
func (p *Parser) Run(input Input) State {
	return Run(p, input)
}

// RunString runs p over the text s.
func (p *Parser) RunString(s string) State {
	return Run(p, NewText(s))
}

// RunBytes runs p over the binary data b.
func (p *Parser) RunBytes(b []byte) State {
	return Run(p, Binary(b))
}

// String implements fmt.Stringer
func (p *Parser) String() string {
	return fmt.Sprintf("Parser(%s)", p.name)
}
