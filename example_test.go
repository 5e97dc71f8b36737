package pcomb_test

import (
	"fmt"

	"github.com/SimonDaKappa/go-pcomb"
)

func ExampleBetween() {
	betweenBrackets := pcomb.Between(pcomb.Str("["), pcomb.Str("]"))

	state := betweenBrackets(pcomb.Digits).RunString("[42]")
	fmt.Println(state.Result, state.Index)
	// Output: 42 4
}

func ExampleSepBy() {
	commaSeparated := pcomb.SepBy(pcomb.Str(","))

	fmt.Println(commaSeparated(pcomb.Digits).RunString("1,2,3").Result)
	fmt.Println(commaSeparated(pcomb.Digits).RunString("1,2,").Result)
	// Output:
	// [1 2 3]
	// [1 2]
}

func ExampleLazy() {
	betweenBrackets := pcomb.Between(pcomb.Str("["), pcomb.Str("]"))
	commaSeparated := pcomb.SepBy(pcomb.Str(","))

	var value *pcomb.Parser
	array := betweenBrackets(commaSeparated(pcomb.Lazy(func() *pcomb.Parser { return value })))
	value = pcomb.Choice(pcomb.Digits, array)

	fmt.Println(value.RunString("[1,[2,[3],4],5]").Result)
	// Output: [1 [2 [3] 4] 5]
}

func ExampleParser_Chain() {
	number := pcomb.Digits.Map(func(r any) any { return "number " + r.(string) })
	word := pcomb.Letters.Map(func(r any) any { return "word " + r.(string) })

	typed := pcomb.SequenceOf(pcomb.Letters, pcomb.Str(":")).
		Map(func(r any) any { return r.([]any)[0] }).
		Chain(func(kind any) *pcomb.Parser {
			if kind == "number" {
				return number
			}
			return word
		})

	fmt.Println(typed.RunString("number:42").Result)
	fmt.Println(typed.RunString("string:hello").Result)
	// Output:
	// number 42
	// word hello
}

func ExampleChoice() {
	state := pcomb.Choice(pcomb.Str("a"), pcomb.Str("ab")).RunString("ab")
	fmt.Println(state.Result, state.Index)

	state = pcomb.Choice(pcomb.Digits, pcomb.Str("x")).RunString("abc")
	fmt.Println(state.ErrorMessage())
	// Output:
	// a 1
	// choice: unable to match any parser at index 0
}

func ExampleInt() {
	data := []byte{200}

	fmt.Println(pcomb.Uint(8).RunBytes(data).Result)
	fmt.Println(pcomb.Int(8).RunBytes(data).Result)
	// Output:
	// 200
	// -56
}

func ExampleRawString() {
	state := pcomb.RawString("ab").RunBytes([]byte("ax"))
	fmt.Println(state.ErrorMessage())
	// Output: rawString: expected character 'b', got 'x'
}

func ExampleDecode() {
	type Header struct {
		Version uint8 `pcomb:"Version,required"`
		Length  uint8 `pcomb:"Length"`
	}

	p := pcomb.SequenceOf(
		pcomb.Uint(4).Map(pcomb.Tag("Version")),
		pcomb.Uint(4).Map(pcomb.Tag("Length")),
	)

	var h Header
	if err := pcomb.ParseInto(p, pcomb.Binary{0x45}, &h); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%+v\n", h)
	// Output: {Version:4 Length:5}
}
