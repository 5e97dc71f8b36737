package pcomb

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr(t *testing.T) {
	tests := []struct {
		name      string
		literal   string
		input     string
		wantIndex int
		wantErr   string
	}{
		{"exact", "hello", "hello", 5, ""},
		{"prefix", "he", "hello", 2, ""},
		{"unicode", "héllo", "héllo wörld", 5, ""},
		{"mismatch", "world", "hello", 0, `str: expected "world", but got "hello"`},
		{"mismatch_truncated", "x", "abcdefghijklmnop", 0, `str: expected "x", but got "abcdefghij..."`},
		{"mismatch_exactly_ten", "x", "abcdefghij", 0, `str: expected "x", but got "abcdefghij"`},
		{"too_short", "hello", "hel", 0, `str: expected "hello", but got "hel"`},
		{"end_of_input", "a", "", 0, `str: unexpected end of input, expected "a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Str(tt.literal).RunString(tt.input)
			assert.Equal(t, tt.wantIndex, state.Index)
			if tt.wantErr != "" {
				require.True(t, state.Failed())
				assert.Equal(t, tt.wantErr, state.ErrorMessage())
				return
			}
			require.False(t, state.Failed(), state.ErrorMessage())
			assert.Equal(t, tt.literal, state.Result)
		})
	}
}

func TestStr_Empty(t *testing.T) {
	for _, input := range []string{"", "abc"} {
		state := Str("").RunString(input)
		require.False(t, state.Failed(), input)
		assert.Equal(t, 0, state.Index)
		assert.Equal(t, "", state.Result)
	}
}

func TestStr_MismatchPreviewFromCursor(t *testing.T) {
	state := SequenceOf(Str("abc"), Str("x")).RunString("abcdefghijklmno")
	require.True(t, state.Failed())
	assert.Equal(t, `str: expected "x", but got "defghijklm..."`, state.ErrorMessage())
}

func TestChar(t *testing.T) {
	state := Char('a').RunString("ab")
	require.False(t, state.Failed())
	assert.Equal(t, "a", state.Result)
	assert.Equal(t, 1, state.Index)

	state = Char('a').RunString("ba")
	require.True(t, state.Failed())
	assert.Contains(t, state.ErrorMessage(), "char: expected 'a'")

	assert.True(t, Char('a').RunString("").Failed())
}

func TestLettersDigits(t *testing.T) {
	tests := []struct {
		name       string
		parser     *Parser
		input      string
		wantResult string
		wantIndex  int
		wantErr    string
	}{
		{"letters_run", Letters, "abcDEF123", "abcDEF", 6, ""},
		{"letters_whole", Letters, "abc", "abc", 3, ""},
		{"letters_none", Letters, "123abc", "", 0, "letters: couldn't match letters at index 0"},
		{"letters_non_ascii", Letters, "ébc", "", 0, "letters: couldn't match letters at index 0"},
		{"letters_eoi", Letters, "", "", 0, "letters: unexpected end of input"},
		{"digits_run", Digits, "0042abc", "0042", 4, ""},
		{"digits_none", Digits, "abc", "", 0, "digits: couldn't match digits at index 0"},
		{"digits_eoi", Digits, "", "", 0, "digits: unexpected end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.parser.RunString(tt.input)
			assert.Equal(t, tt.wantIndex, state.Index)
			if tt.wantErr != "" {
				require.True(t, state.Failed())
				assert.Equal(t, tt.wantErr, state.ErrorMessage())
				return
			}
			require.False(t, state.Failed(), state.ErrorMessage())
			assert.Equal(t, tt.wantResult, state.Result)
		})
	}
}

func TestLetters_AnchoredAtCursor(t *testing.T) {
	state := SequenceOf(Digits, Letters, Digits).RunString("12ab34")
	require.False(t, state.Failed())
	assert.Equal(t, []any{"12", "ab", "34"}, state.Result)
	assert.Equal(t, 6, state.Index)
}

func TestRegex(t *testing.T) {
	hex := Regex("hex", "[0-9a-f]+")

	state := hex.RunString("00ffzz")
	require.False(t, state.Failed())
	assert.Equal(t, "00ff", state.Result)
	assert.Equal(t, 4, state.Index)

	state = hex.RunString("zz00")
	require.True(t, state.Failed())
	assert.Contains(t, state.ErrorMessage(), "hex: couldn't match")

	// the match is anchored at the cursor, not searched for
	state = SequenceOf(Str("é"), Regex("word", `\w+`)).RunString("éabc def")
	require.False(t, state.Failed())
	assert.Equal(t, 4, state.Index)

	// a leading ^ does not leave later alternatives unanchored
	alt := Regex("alt", "^a|b")
	state = alt.RunString("zzb")
	require.True(t, state.Failed())
	assert.Equal(t, `alt: couldn't match "^a|b" at index 0`, state.ErrorMessage())
	assert.Equal(t, 0, state.Index)

	state = alt.RunString("bz")
	require.False(t, state.Failed())
	assert.Equal(t, "b", state.Result)
	assert.Equal(t, 1, state.Index)

	// multi-byte characters advance the cursor by one each
	state = SequenceOf(Str("a"), Regex("accents", "[éü]+")).RunString("aéüx")
	require.False(t, state.Failed())
	assert.Equal(t, []any{"a", "éü"}, state.Result)
	assert.Equal(t, 3, state.Index)

	assert.Panics(t, func() { Regex("bad", "(") })
}

func TestRegex_ReadsOnlyWhatItMatches(t *testing.T) {
	text := NewText("ab" + strings.Repeat("z", 10000))
	re := regexp.MustCompile("^(?:[ab]+)")

	r := &textReader{text: text, pos: 0}
	loc := re.FindReaderIndex(r)
	require.Equal(t, []int{0, 2}, loc)
	assert.Less(t, r.pos, 10)

	assert.Equal(t, 3, runeOffset(NewText("xéy"), 1, 3))
	assert.Equal(t, 2, runeOffset(NewText("xéy"), 1, 2))
}

func TestEndOfInput(t *testing.T) {
	p := SequenceOf(Letters, EndOfInput)

	state := p.RunString("abc")
	require.False(t, state.Failed())
	assert.Equal(t, []any{"abc", nil}, state.Result)

	state = p.RunString("abc1")
	require.True(t, state.Failed())
	assert.Contains(t, state.ErrorMessage(), "endOfInput: expected end of input at index 3")
}

func TestTextPrimitives_BinaryInput(t *testing.T) {
	for _, p := range []*Parser{Str("a"), Char('a'), Letters, Digits, Regex("re", "a")} {
		state := p.RunBytes([]byte("a"))
		require.True(t, state.Failed(), p.Name())
		assert.Contains(t, state.ErrorMessage(), "expected text input")
	}
}
