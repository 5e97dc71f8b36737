package pcomb

import (
	"sync"
)

// SequenceOf returns a parser that applies parsers in order, each from where
// the previous one stopped. It stops at the first failure and returns that
// failed State. On success the result is a []any holding each parser's
// result in order.
func SequenceOf(parsers ...*Parser) *Parser {
	return New(SequenceOfParserName, func(s State) State {
		results := make([]any, 0, len(parsers))
		next := s
		for _, p := range parsers {
			next = p.Apply(next)
			if next.Failed() {
				return next
			}
			results = append(results, next.Result)
		}
		return updateResult(next, results)
	})
}

// Choice returns a parser that tries each of parsers against the same
// incoming State, in order, and returns the first success. Choice is
// ordered, not longest match.
func Choice(parsers ...*Parser) *Parser {
	return New(ChoiceParserName, func(s State) State {
		for _, p := range parsers {
			if next := p.Apply(s); !next.Failed() {
				return next
			}
		}
		return updateErrorf(s, "%s: unable to match any parser at index %d", ChoiceParserName, s.Index)
	})
}

// repeat applies p until it fails and returns the last successful State
// with the collected results. A success that does not move the cursor is
// kept and ends the repetition, since applying p again would yield the same
// State forever.
func repeat(p *Parser, s State) (State, []any) {
	results := []any{}
	next := s
	for {
		attempt := p.Apply(next)
		if attempt.Failed() {
			return next, results
		}
		results = append(results, attempt.Result)
		progressed := attempt.Index != next.Index
		next = attempt
		if !progressed {
			return next, results
		}
	}
}

// Many returns a parser that applies p zero or more times. It never fails;
// the result is a []any of p's results, possibly empty. The failed attempt
// that ends the repetition leaves no trace.
func Many(p *Parser) *Parser {
	return New(ManyParserName, func(s State) State {
		next, results := repeat(p, s)
		return updateResult(next, results)
	})
}

// ManyStrict is Many, but fails when p matches nothing.
func ManyStrict(p *Parser) *Parser {
	return New(ManyStrictParserName, func(s State) State {
		next, results := repeat(p, s)
		if len(results) == 0 {
			return updateErrorf(next, "%s: couldn't match anything at index %d", ManyStrictParserName, s.Index)
		}
		return updateResult(next, results)
	})
}

// SepBy returns a function that builds a parser matching zero or more
// values separated by separator. It alternates value, separator, value...
// and stops, without failing, as soon as either fails. The result is a []any
// of the value results only.
//
// A trailing separator that is not followed by a value is not consumed. An
// iteration in which neither value nor separator moves the cursor ends the
// repetition.
func SepBy(separator *Parser) func(value *Parser) *Parser {
	return func(value *Parser) *Parser {
		return New(SepByParserName, func(s State) State {
			results := []any{}
			last, next := s, s
			for {
				start := next.Index

				valueState := value.Apply(next)
				if valueState.Failed() {
					break
				}
				results = append(results, valueState.Result)
				last = valueState

				separatorState := separator.Apply(valueState)
				if separatorState.Failed() || separatorState.Index == start {
					break
				}
				next = separatorState
			}
			return updateResult(last, results)
		})
	}
}

// Between returns a function that builds a parser matching left, content
// and right in sequence. The result is content's result; the brackets are
// consumed and discarded.
func Between(left, right *Parser) func(content *Parser) *Parser {
	return func(content *Parser) *Parser {
		return SequenceOf(left, content, right).
			Map(func(results any) any {
				return results.([]any)[1]
			}).
			Named(BetweenParserName)
	}
}

// Lazy returns a parser that calls thunk the first time it is applied and
// delegates to the parser thunk returns from then on. It lets a rule refer to
// itself, or to a rule declared after it, without infinite recursion at
// construction time.
//
// If thunk returns nil, or panics on its first call, every application of the
// parser fails.
func Lazy(thunk func() *Parser) *Parser {
	var (
		once   sync.Once
		target *Parser
	)
	return New(LazyParserName, func(s State) State {
		once.Do(func() { target = thunk() })
		if target == nil {
			return updateErrorf(s, "%s: thunk returned nil parser", LazyParserName)
		}
		return target.Apply(s)
	})
}

// Succeed returns a parser that always succeeds with value as its result,
// without consuming input.
func Succeed(value any) *Parser {
	return New(SucceedParserName, func(s State) State {
		return updateResult(s, value)
	})
}

// Fail returns a parser that always fails with msg, without consuming input.
func Fail(msg string) *Parser {
	return New(FailParserName, func(s State) State {
		return updateError(s, msg)
	})
}
