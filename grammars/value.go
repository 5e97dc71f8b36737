package grammars

import (
	"fmt"
	"strconv"

	pcomb "github.com/SimonDaKappa/go-pcomb"
)

// Value kinds understood by TypedValue.
const (
	StringKind   = "string"
	NumberKind   = "number"
	DiceRollKind = "diceroll"
)

// Value is a typed value such as "number:42".
type Value struct {
	Type  string
	Value any
}

// DiceRoll is a roll of Count dice with Sides sides each, written "2d8".
type DiceRoll struct {
	Count int
	Sides int
}

// Integer parses a run of digits into an int.
var Integer = pcomb.Digits.Chain(func(r any) *pcomb.Parser {
	n, err := strconv.Atoi(r.(string))
	if err != nil {
		return pcomb.Fail(fmt.Sprintf("integer: %v", err))
	}
	return pcomb.Succeed(n)
}).Named("integer")

var (
	stringValue = pcomb.Letters.Map(func(r any) any {
		return Value{Type: StringKind, Value: r}
	})

	numberValue = Integer.Map(func(r any) any {
		return Value{Type: NumberKind, Value: r}
	})

	diceRollValue = pcomb.SequenceOf(Integer, pcomb.Str("d"), Integer).Map(func(r any) any {
		results := r.([]any)
		return Value{Type: DiceRollKind, Value: DiceRoll{Count: results[0].(int), Sides: results[2].(int)}}
	})
)

// TypedValue parses "<type>:<value>" where the type prefix selects how the
// rest is parsed:
//
//	string:hello   -> Value{"string", "hello"}
//	number:42      -> Value{"number", 42}
//	diceroll:2d8   -> Value{"diceroll", DiceRoll{2, 8}}
var TypedValue = pcomb.SequenceOf(pcomb.Letters, pcomb.Str(":")).
	Map(func(r any) any { return r.([]any)[0] }).
	Chain(func(kind any) *pcomb.Parser {
		switch kind {
		case StringKind:
			return stringValue
		case NumberKind:
			return numberValue
		case DiceRollKind:
			return diceRollValue
		default:
			return pcomb.Fail(fmt.Sprintf("value: unknown type %q", kind))
		}
	}).
	Named("typedValue")

// ParseValue parses a single typed value.
func ParseValue(s string) (Value, error) {
	state := pcomb.SequenceOf(TypedValue, pcomb.EndOfInput).RunString(s)
	if state.Failed() {
		return Value{}, state.Err
	}
	return state.Result.([]any)[0].(Value), nil
}
