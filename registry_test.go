package pcomb

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_Define(t *testing.T) {
	t.Run("Define", func(t *testing.T) {
		g := NewGrammar(GrammarOpts{Name: "test"})
		require.NoError(t, g.Define("number", Digits))

		p, err := g.Lookup("number")
		require.NoError(t, err)
		assert.Equal(t, "number", p.Name())
		assert.Equal(t, "test", g.Name())
	})

	t.Run("AlreadyDefined", func(t *testing.T) {
		g := NewGrammar(GrammarOpts{})
		require.NoError(t, g.Define("number", Digits))
		err := g.Define("number", Letters)
		assert.ErrorIs(t, err, ErrRuleAlreadyDefined)
	})

	t.Run("InvalidRule", func(t *testing.T) {
		g := NewGrammar(GrammarOpts{})
		assert.ErrorIs(t, g.Define("", Digits), ErrEmptyRuleName)
		assert.ErrorIs(t, g.Define("nil", nil), ErrNilRule)
	})

	t.Run("MustDefinePanics", func(t *testing.T) {
		g := NewGrammar(GrammarOpts{Name: "test"})
		g.MustDefine("number", Digits)
		assert.Panics(t, func() { g.MustDefine("number", Digits) })
	})

	t.Run("NotFound", func(t *testing.T) {
		g := NewGrammar(GrammarOpts{})
		_, err := g.Lookup("missing")
		assert.ErrorIs(t, err, ErrRuleNotFound)

		_, err = g.Run("missing", NewText(""))
		assert.ErrorIs(t, err, ErrRuleNotFound)
	})
}

func TestGrammar_Ref(t *testing.T) {
	t.Run("ForwardReference", func(t *testing.T) {
		g := NewGrammar(GrammarOpts{})

		// value is defined before array, which it refers to
		g.MustDefine("value", Choice(Digits, g.Ref("array")))
		g.MustDefine("array", Between(Str("["), Str("]"))(SepBy(Str(","))(g.Ref("value"))))

		state, err := g.Run("value", NewText("[1,[2],[]]"))
		require.NoError(t, err)
		require.False(t, state.Failed(), state.ErrorMessage())
		assert.Equal(t, []any{"1", []any{"2"}, []any{}}, state.Result)
	})

	t.Run("UndefinedAtParseTime", func(t *testing.T) {
		g := NewGrammar(GrammarOpts{})
		g.MustDefine("start", SequenceOf(Str("a"), g.Ref("rest")))

		state, err := g.Run("start", NewText("ab"))
		require.NoError(t, err)
		require.True(t, state.Failed())
		assert.Equal(t, `rule: undefined rule "rest"`, state.ErrorMessage())

		g.MustDefine("rest", Str("b"))
		state, err = g.Run("start", NewText("ab"))
		require.NoError(t, err)
		assert.False(t, state.Failed())
	})
}

func TestGrammar_Rules(t *testing.T) {
	g := NewGrammar(GrammarOpts{})
	g.MustDefine("b", Letters)
	g.MustDefine("a", Digits)
	g.MustDefine("c", Str("c"))

	assert.Equal(t, []string{"a", "b", "c"}, g.Rules())
}

func TestGrammar_Concurrent(t *testing.T) {
	g := NewGrammar(GrammarOpts{})
	g.MustDefine("word", Letters)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state, err := g.Run("word", NewText("hello"))
			assert.NoError(t, err)
			assert.Equal(t, "hello", state.Result)
		}()
		go func(i int) {
			defer wg.Done()
			_ = g.Define(string(rune('a'+i)), Digits)
		}(i)
	}
	wg.Wait()

	assert.Len(t, g.Rules(), 9)
}
