// Package grammars holds example grammars built on pcomb: nested arrays,
// prefix arithmetic, typed values, UUID lists and the IPv4 header layout.
package grammars

import (
	pcomb "github.com/SimonDaKappa/go-pcomb"
	"go.uber.org/zap"
)

// Catalog rule names.
const (
	ArrayRule      = "array"
	ArithRule      = "arith"
	ValueRule      = "value"
	UUIDRule       = "uuid"
	IPv4HeaderRule = "ipv4"
)

// binaryRules are the catalog rules that run over binary input.
var binaryRules = map[string]bool{
	IPv4HeaderRule: true,
}

// NewCatalog returns a Grammar holding every example grammar as a rule,
// ready to be run by name.
func NewCatalog(logger *zap.Logger) *pcomb.Grammar {
	g := pcomb.NewGrammar(pcomb.GrammarOpts{Name: "catalog", Logger: logger})
	g.MustDefine(ArrayRule, Array)
	g.MustDefine(ArithRule, Expression)
	g.MustDefine(ValueRule, TypedValue)
	g.MustDefine(UUIDRule, UUIDList)
	g.MustDefine(IPv4HeaderRule, IPv4HeaderLayout)
	return g
}

// IsBinary reports whether the catalog rule name parses binary input.
func IsBinary(name string) bool {
	return binaryRules[name]
}
