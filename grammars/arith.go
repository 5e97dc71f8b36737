package grammars

import (
	"errors"
	"fmt"
	"strconv"

	pcomb "github.com/SimonDaKappa/go-pcomb"
)

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Node is a node of an arithmetic expression tree.
type Node interface {
	node()
}

// Number is a literal operand.
type Number struct {
	Value float64
}

// Operation applies Op to the values of A and B.
type Operation struct {
	Op   string
	A, B Node
}

func (Number) node()    {}
func (Operation) node() {}

// Arithmetic is the grammar of prefix arithmetic expressions:
//
//	expression: number | operation
//	operation:  "(" operator " " expression " " expression ")"
//	operator:   "+" | "-" | "*" | "/"
//	number:     [0-9]+
//
// For example "(+ (* 10 2) (- 10 2))".
var Arithmetic = newArithmetic()

// Expression parses an arithmetic expression into a Node.
var Expression = mustLookup(Arithmetic, "expression")

func newArithmetic() *pcomb.Grammar {
	g := pcomb.NewGrammar(pcomb.GrammarOpts{Name: "arithmetic"})

	g.MustDefine("number", pcomb.MapTo(pcomb.Digits, func(digits string) Node {
		// Digits only matches [0-9]+, which always parses.
		v, _ := strconv.ParseFloat(digits, 64)
		return Number{Value: v}
	}))

	g.MustDefine("operator", pcomb.Choice(pcomb.Str("+"), pcomb.Str("-"), pcomb.Str("*"), pcomb.Str("/")))

	betweenBrackets := pcomb.Between(pcomb.Str("("), pcomb.Str(")"))
	g.MustDefine("operation", betweenBrackets(pcomb.SequenceOf(
		g.Ref("operator"),
		pcomb.Str(" "),
		g.Ref("expression"),
		pcomb.Str(" "),
		g.Ref("expression"),
	)).Map(func(r any) any {
		results := r.([]any)
		return Operation{
			Op: results[0].(string),
			A:  results[2].(Node),
			B:  results[4].(Node),
		}
	}))

	g.MustDefine("expression", pcomb.Choice(g.Ref("number"), g.Ref("operation")))
	return g
}

// Evaluate computes the value of an expression tree.
func Evaluate(n Node) (float64, error) {
	switch n := n.(type) {
	case Number:
		return n.Value, nil
	case Operation:
		a, err := Evaluate(n.A)
		if err != nil {
			return 0, err
		}
		b, err := Evaluate(n.B)
		if err != nil {
			return 0, err
		}

		switch n.Op {
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		case "*":
			return a * b, nil
		case "/":
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, n.Op)
		}
	default:
		return 0, fmt.Errorf("unexpected node type %T", n)
	}
}

// Interpret parses and evaluates program. The whole program must be a
// single expression.
func Interpret(program string) (float64, error) {
	state := pcomb.SequenceOf(Expression, pcomb.EndOfInput).RunString(program)
	if state.Failed() {
		return 0, state.Err
	}
	return Evaluate(state.Result.([]any)[0].(Node))
}

func mustLookup(g *pcomb.Grammar, rule string) *pcomb.Parser {
	p, err := g.Lookup(rule)
	if err != nil {
		panic(err)
	}
	return p
}
