package grammars

import (
	pcomb "github.com/SimonDaKappa/go-pcomb"
)

var (
	betweenSquareBrackets = pcomb.Between(pcomb.Str("["), pcomb.Str("]"))
	commaSeparated        = pcomb.SepBy(pcomb.Str(","))
)

// Array parses a bracketed, comma separated list of ArrayValues, such as
// "[1,[2,[3],4],5]". ArrayValue parses an integer or a nested Array.
// Integers are produced as int and arrays as []any.
var Array, ArrayValue = newArray()

func newArray() (array, value *pcomb.Parser) {
	value = pcomb.Lazy(func() *pcomb.Parser {
		return pcomb.Choice(Integer, array)
	})
	array = betweenSquareBrackets(commaSeparated(value))
	return array.Named("array"), value.Named("arrayValue")
}

// ParseArray parses a complete nested array literal.
func ParseArray(s string) ([]any, error) {
	state := pcomb.SequenceOf(Array, pcomb.EndOfInput).RunString(s)
	if state.Failed() {
		return nil, state.Err
	}
	return state.Result.([]any)[0].([]any), nil
}
