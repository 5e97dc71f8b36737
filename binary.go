package pcomb

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	ErrInvalidWidth = errors.New("bit width must be between 1 and 64")
	ErrEmptyLiteral = errors.New("literal must not be empty")
)

///////////////////////////////////////////////////////////////////////////////
// Bits
///////////////////////////////////////////////////////////////////////////////

// binaryInput returns the Binary of s, or a failed State if s is over
// another kind of input.
func binaryInput(name string, s State) (Binary, State, bool) {
	data, ok := s.Input.(Binary)
	if !ok {
		return nil, updateErrorf(s, "%s: expected binary input, got %T", name, s.Input), false
	}
	return data, s, true
}

var (
	// Bit reads the bit at the cursor and produces it as an int, 0 or 1.
	// Bits are read most significant first within each byte and the cursor
	// advances by one bit.
	Bit = New(BitParserName, func(s State) State {
		data, s, ok := binaryInput(BitParserName, s)
		if !ok {
			return s
		}

		byteOffset := s.Index / bitsPerByte
		if byteOffset >= len(data) {
			return updateErrorf(s, "%s: unexpected end of input", BitParserName)
		}

		shift := bitsPerByte - 1 - s.Index%bitsPerByte
		bit := int(data[byteOffset]>>shift) & 1
		return updateState(s, s.Index+1, bit)
	})

	// BitZero reads a bit and fails unless it is 0.
	BitZero = expectBit(BitZeroParserName, 0)

	// BitOne reads a bit and fails unless it is 1.
	BitOne = expectBit(BitOneParserName, 1)
)

func expectBit(name string, want int) *Parser {
	return New(name, func(s State) State {
		next := Bit.Apply(s)
		if next.Failed() {
			return next
		}
		if got := next.Result.(int); got != want {
			return updateErrorf(s, "%s: expected %d, but got %d at index %d", name, want, got, s.Index)
		}
		return next
	})
}

///////////////////////////////////////////////////////////////////////////////
// Integers
///////////////////////////////////////////////////////////////////////////////

func checkWidth(name string, n int) {
	if n <= 0 || n > maxBitWidth {
		panic(fmt.Errorf("%s: %w, got %d", name, ErrInvalidWidth, n))
	}
}

// bits returns a parser that reads exactly n bits.
func bits(n int) *Parser {
	return SequenceOf(lo.Times(n, func(int) *Parser { return Bit })...)
}

// weigh combines bits most significant first: value = Σ bit[i] << (n-1-i).
// When invert is set every bit is complemented first.
func weigh(results []any, invert bool) uint64 {
	n := len(results)
	return lo.Reduce(results, func(acc uint64, b any, i int) uint64 {
		bit := uint64(b.(int))
		if invert {
			bit ^= 1
		}
		return acc | bit<<(n-1-i)
	}, 0)
}

// Uint returns a parser that decodes the next n bits as an unsigned integer,
// most significant bit first. The result is a uint64.
//
// Uint panics with an error wrapping ErrInvalidWidth unless 1 <= n <= 64.
func Uint(n int) *Parser {
	checkWidth(UintParserName, n)
	return bits(n).
		Map(func(results any) any {
			return weigh(results.([]any), false)
		}).
		Named(fmt.Sprintf("%s(%d)", UintParserName, n))
}

// Int returns a parser that decodes the next n bits as a two's complement
// signed integer. The result is an int64.
//
// Int panics with an error wrapping ErrInvalidWidth unless 1 <= n <= 64.
func Int(n int) *Parser {
	checkWidth(IntParserName, n)
	return bits(n).
		Map(func(results any) any {
			bs := results.([]any)
			if bs[0].(int) == 0 {
				return int64(weigh(bs, false))
			}
			// Negative: complement the bits, add one, negate.
			return -int64(weigh(bs, true)) - 1
		}).
		Named(fmt.Sprintf("%s(%d)", IntParserName, n))
}

// RawString returns a parser that matches the bytes of s, one Uint(8) at a
// time. It fails at the first byte that differs, naming the expected and the
// observed character. The result is the matched bytes.
//
// RawString panics with an error wrapping ErrEmptyLiteral if s is empty.
func RawString(s string) *Parser {
	if len(s) == 0 {
		panic(fmt.Errorf("%s: %w", RawStringParserName, ErrEmptyLiteral))
	}

	byteParsers := lo.Map([]byte(s), func(want byte, _ int) *Parser {
		return Uint(8).Chain(func(res any) *Parser {
			got := byte(res.(uint64))
			if got == want {
				return Succeed(want)
			}
			return Fail(fmt.Sprintf("%s: expected character %q, got %q", RawStringParserName, want, got))
		})
	})

	return SequenceOf(byteParsers...).
		Map(func(results any) any {
			return lo.Map(results.([]any), func(b any, _ int) byte { return b.(byte) })
		}).
		Named(RawStringParserName)
}
