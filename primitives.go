package pcomb

import (
	"io"
	"regexp"
	"unicode/utf8"
)

// textInput returns the Text of s, or a failed State if s is over another
// kind of input.
func textInput(name string, s State) (Text, State, bool) {
	text, ok := s.Input.(Text)
	if !ok {
		return nil, updateErrorf(s, "%s: expected text input, got %T", name, s.Input), false
	}
	return text, s, true
}

// preview quotes the input starting at index for mismatch messages.
func preview(text Text, index int) string {
	end := min(index+previewLength, len(text))
	out := string(text[index:end])
	if len(text)-index > previewLength {
		out += previewEllipsis
	}
	return out
}

// Str returns a parser that matches the literal s.
//
// The empty literal always succeeds without consuming input, even at the end
// of the input.
func Str(s string) *Parser {
	lit := []rune(s)
	return New(StrParserName, func(state State) State {
		text, state, ok := textInput(StrParserName, state)
		if !ok {
			return state
		}
		if len(lit) == 0 {
			return updateState(state, state.Index, "")
		}

		index := state.Index
		if index >= len(text) {
			return updateErrorf(state, "%s: unexpected end of input, expected %q", StrParserName, s)
		}
		if hasPrefix(text[index:], lit) {
			return updateState(state, index+len(lit), s)
		}
		return updateErrorf(state, "%s: expected %q, but got %q", StrParserName, s, preview(text, index))
	})
}

func hasPrefix(text Text, lit []rune) bool {
	if len(text) < len(lit) {
		return false
	}
	for i, r := range lit {
		if text[i] != r {
			return false
		}
	}
	return true
}

// Char returns a parser that matches the single character r.
func Char(r rune) *Parser {
	return New(CharParserName, func(state State) State {
		text, state, ok := textInput(CharParserName, state)
		if !ok {
			return state
		}
		index := state.Index
		if index >= len(text) {
			return updateErrorf(state, "%s: unexpected end of input, expected %q", CharParserName, r)
		}
		if text[index] != r {
			return updateErrorf(state, "%s: expected %q, but got %q at index %d", CharParserName, r, text[index], index)
		}
		return updateState(state, index+1, string(r))
	})
}

// runOf returns a parser producing the longest non-empty run of characters
// at the cursor that satisfy pred.
func runOf(name, class string, pred func(rune) bool) *Parser {
	return New(name, func(state State) State {
		text, state, ok := textInput(name, state)
		if !ok {
			return state
		}
		index := state.Index
		if index >= len(text) {
			return updateErrorf(state, "%s: unexpected end of input", name)
		}

		end := index
		for end < len(text) && pred(text[end]) {
			end++
		}
		if end == index {
			return updateErrorf(state, "%s: couldn't match %s at index %d", name, class, index)
		}
		return updateState(state, end, string(text[index:end]))
	})
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

var (
	// Letters matches the longest run of ASCII letters, [A-Za-z]+.
	Letters = runOf(LettersParserName, "letters", isLetter)

	// Digits matches the longest run of ASCII digits, [0-9]+.
	Digits = runOf(DigitsParserName, "digits", isDigit)

	// EndOfInput succeeds, with a nil result, only when the cursor is at the
	// end of the input.
	EndOfInput = New(EndOfInputParserName, func(state State) State {
		if state.Index < state.Input.Len() {
			return updateErrorf(state, "%s: expected end of input at index %d, but %d units remain",
				EndOfInputParserName, state.Index, state.Input.Len()-state.Index)
		}
		return updateResult(state, nil)
	})
)

// Regex returns a parser that matches pattern anchored at the cursor. The
// result is the matched text; an empty match fails. Every alternative of
// pattern is anchored, including patterns that already start with "^".
//
// Regex panics if pattern does not compile.
func Regex(name, pattern string) *Parser {
	re := regexp.MustCompile("^(?:" + pattern + ")")

	return New(name, func(state State) State {
		text, state, ok := textInput(name, state)
		if !ok {
			return state
		}
		index := state.Index
		if index >= len(text) {
			return updateErrorf(state, "%s: unexpected end of input", name)
		}

		loc := re.FindReaderIndex(&textReader{text: text, pos: index})
		if loc == nil || loc[1] == 0 {
			return updateErrorf(state, "%s: couldn't match %q at index %d", name, pattern, index)
		}
		end := runeOffset(text, index, loc[1])
		return updateState(state, end, string(text[index:end]))
	})
}

// textReader reads the runes of text from pos onwards, so the regexp engine
// only decodes as much input as the match needs.
type textReader struct {
	text Text
	pos  int
}

func (r *textReader) ReadRune() (rune, int, error) {
	if r.pos >= len(r.text) {
		return 0, 0, io.EOF
	}
	c := r.text[r.pos]
	r.pos++
	return c, runeSize(c), nil
}

// runeOffset returns the index of the character that ends n UTF-8 bytes
// after start.
func runeOffset(text Text, start, n int) int {
	i := start
	for n > 0 && i < len(text) {
		n -= runeSize(text[i])
		i++
	}
	return i
}

func runeSize(r rune) int {
	if size := utf8.RuneLen(r); size > 0 {
		return size
	}
	return utf8.RuneLen(utf8.RuneError)
}
