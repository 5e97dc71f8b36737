package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

const ipv4Hex = "45b90054 1c464000 4001b1e6 c0a80001 0a000002"

func TestList(t *testing.T) {
	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "arith\ttext\narray\ttext\nipv4\tbinary\nuuid\ttext\nvalue\ttext\n", out)
}

func TestEval(t *testing.T) {
	out, err := execute(t, "", "eval", "(+ (* 10 2) (- 10 2))")
	require.NoError(t, err)
	assert.Equal(t, "28\n", out)

	_, err = execute(t, "", "eval", "(/ 1 0)")
	assert.ErrorContains(t, err, "division by zero")
}

func TestRun(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		out, err := execute(t, "", "run", "array", "[1,[2,3]]")
		require.NoError(t, err)
		assert.JSONEq(t, `{"grammar":"array","index":9,"failed":false,"result":[1,[2,3]]}`, out)
	})

	t.Run("Stdin", func(t *testing.T) {
		out, err := execute(t, "diceroll:2d8", "run", "value")
		require.NoError(t, err)
		assert.Equal(t, int64(2), gjson.Get(out, "result.Value.Count").Int())
	})

	t.Run("Failure", func(t *testing.T) {
		out, err := execute(t, "", "run", "array", "[1")
		assert.ErrorIs(t, err, errParseFailed)
		assert.True(t, gjson.Get(out, "failed").Bool())
		assert.Equal(t, "str: unexpected end of input, expected \"]\"", gjson.Get(out, "error").String())
	})

	t.Run("BinarySelect", func(t *testing.T) {
		out, err := execute(t, "", "run", "ipv4", ipv4Hex, "--select", "result.#(name==\"TTL\").value")
		require.NoError(t, err)
		assert.Equal(t, "64\n", out)
	})

	t.Run("MissingPath", func(t *testing.T) {
		_, err := execute(t, "", "run", "ipv4", ipv4Hex, "--select", "result.nope")
		assert.ErrorIs(t, err, errPathNotFound)
	})

	t.Run("BadHex", func(t *testing.T) {
		_, err := execute(t, "", "run", "ipv4", "zz")
		assert.ErrorContains(t, err, "decode hex input")
	})

	t.Run("UnknownGrammar", func(t *testing.T) {
		_, err := execute(t, "", "run", "json", "{}")
		assert.ErrorContains(t, err, "no rule defined with this name")
	})
}

func TestJsonable(t *testing.T) {
	assert.Equal(t, "6869", jsonable([]byte("hi")))
	assert.Equal(t, []any{"00"}, jsonable([]any{[]byte{0}}))
}
