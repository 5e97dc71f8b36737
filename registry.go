package pcomb

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

var (
	ErrRuleAlreadyDefined = errors.New("a rule with this name is already defined")
	ErrRuleNotFound       = errors.New("no rule defined with this name")
	ErrEmptyRuleName      = errors.New("rule name cannot be empty")
	ErrNilRule            = errors.New("rule parser cannot be nil")
)

///////////////////////////////////////////////////////////////////////////////
// Grammar Impl.
///////////////////////////////////////////////////////////////////////////////

// Grammar is a table of named rules.
//
// Rules are resolved by name when they are applied, not when they are
// referenced, so a rule may refer to itself or to rules defined after it
// through Ref. This is the named counterpart of Lazy.
//
// A Grammar is safe for concurrent use: rules may be defined while other
// goroutines run parsers built from it.
type Grammar struct {
	name   string
	rules  map[string]*Parser
	mutex  sync.RWMutex
	logger *zap.Logger
}

// GrammarOpts configures a Grammar.
type GrammarOpts struct {
	// Name identifies the grammar in error messages and traces.
	Name string
	// Logger is used by Run for tracing. Nil disables tracing.
	Logger *zap.Logger
}

// NewGrammar returns an empty Grammar.
func NewGrammar(opts GrammarOpts) *Grammar {
	return &Grammar{
		name:   opts.Name,
		rules:  make(map[string]*Parser),
		logger: opts.Logger,
	}
}

// Name returns the grammar's name.
func (g *Grammar) Name() string {
	return g.name
}

// Define adds the rule name. Redefining a rule is an error.
func (g *Grammar) Define(name string, p *Parser) error {
	if name == "" {
		return ErrEmptyRuleName
	}
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNilRule, name)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, exists := g.rules[name]; exists {
		return fmt.Errorf("%w: %s", ErrRuleAlreadyDefined, name)
	}
	g.rules[name] = p.Named(name)
	return nil
}

// MustDefine is Define, but panics on error. It is meant for grammars built
// at package initialization.
func (g *Grammar) MustDefine(name string, p *Parser) {
	if err := g.Define(name, p); err != nil {
		panic(fmt.Sprintf("grammar %s: %v", g.name, err))
	}
}

// Lookup returns the rule name.
func (g *Grammar) Lookup(name string) (*Parser, error) {
	g.mutex.RLock()
	p, exists := g.rules[name]
	g.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, name)
	}
	return p, nil
}

// Ref returns a parser that applies the rule name, looked up at parse time.
// If the rule is still undefined when the parser is applied, the parse fails.
func (g *Grammar) Ref(name string) *Parser {
	return New(name, func(s State) State {
		p, err := g.Lookup(name)
		if err != nil {
			return updateErrorf(s, "%s: undefined rule %q", RuleParserName, name)
		}
		return p.Apply(s)
	})
}

// Rules returns the names of all defined rules, sorted.
func (g *Grammar) Rules() []string {
	g.mutex.RLock()
	names := lo.Keys(g.rules)
	g.mutex.RUnlock()

	slices.Sort(names)
	return names
}

// Run runs the rule name over input.
func (g *Grammar) Run(name string, input Input) (State, error) {
	p, err := g.Lookup(name)
	if err != nil {
		return State{}, err
	}
	return RunWithOpts(p, input, RunOpts{Logger: g.logger}), nil
}
