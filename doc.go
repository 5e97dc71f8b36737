// Package pcomb (Parser COMBinators) provides a small set of primitive parsers
// and combinator functions that can be assembled into parsers for arbitrary
// grammars over textual input or bit-addressable binary input.
//
// A grammar is built once by composing primitives and combinators. Building
// is pure data: nothing is parsed until the resulting Parser is run against
// an input. Parsers are immutable after construction and may be shared by
// many grammars and run concurrently on independent inputs.
//
// Every parser is a transformation from one State to the next. A State holds
// the input, the cursor (Index), the last produced Result and, on failure, a
// *ParseError. Once a State has failed, every parser passes it through
// unchanged, so the first failure is the one reported.
//
// The package provides the following primitives:
//   - Text input: Str, Char, Letters, Digits, Regex, EndOfInput
//   - Binary input: Bit, BitZero, BitOne, Uint, Int, RawString
//   - Constants: Succeed, Fail
//
// And the following combinators:
//   - SequenceOf, Choice: sequencing and ordered choice
//   - Many, ManyStrict, SepBy: repetition
//   - Between: bracketed content
//   - Lazy: deferred construction for recursive grammars
//   - Parser.Map, Parser.ErrorMap, Parser.Chain, MapTo: result transformation
//
// Example, a nested array grammar:
//
//	betweenBrackets := pcomb.Between(pcomb.Str("["), pcomb.Str("]"))
//	commaSeparated := pcomb.SepBy(pcomb.Str(","))
//
//	var value *pcomb.Parser
//	array := betweenBrackets(commaSeparated(pcomb.Lazy(func() *pcomb.Parser { return value })))
//	value = pcomb.Choice(pcomb.Digits, array)
//
//	state := value.RunString("[1,[2,[3],4],5]")
//	if state.Failed() {
//		log.Fatal(state.Err)
//	}
//
// Grammars with many named rules can be kept in a Grammar, which resolves
// rules by name at parse time and so allows rules to refer to each other in
// any order.
//
// Tagged results produced with Tag can be decoded into structs with Decode,
// using `pcomb:"<name>"` struct tags.
package pcomb
