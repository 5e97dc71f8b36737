package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	pcomb "github.com/SimonDaKappa/go-pcomb"
	"github.com/SimonDaKappa/go-pcomb/grammars"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	errParseFailed   = errors.New("parse failed")
	errPathNotFound  = errors.New("path not found in result")
	errTooManyInputs = errors.New("input given both as argument and --file")
)

type runOptions struct {
	file       string
	hex        bool
	selectPath string
	trace      bool
}

// stateOutput is the JSON form of a final parse state.
type stateOutput struct {
	Grammar string `json:"grammar"`
	Index   int    `json:"index"`
	Failed  bool   `json:"failed"`
	Error   string `json:"error,omitempty"`
	Result  any    `json:"result"`
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <grammar> [input]",
		Short: "Run a grammar over input and print the final state as JSON",
		Long: `Run a grammar over input and print the final state as JSON.

Input is read from the argument, from --file, or from stdin. Binary grammars
take hex encoded input; --hex forces hex decoding for any grammar.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrammar(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read input from file")
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "decode input as hex into binary input")
	cmd.Flags().StringVar(&opts.selectPath, "select", "", "print only this gjson path of the output")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "log every parser step to stderr")

	return cmd
}

func runGrammar(cmd *cobra.Command, args []string, opts runOptions) error {
	logger, err := newLogger(opts.trace)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	name := args[0]
	raw, err := readInput(cmd, args[1:], opts.file)
	if err != nil {
		return err
	}

	input, err := toInput(raw, opts.hex || grammars.IsBinary(name))
	if err != nil {
		return err
	}

	state, err := grammars.NewCatalog(logger).Run(name, input)
	if err != nil {
		return err
	}

	out, err := json.Marshal(stateOutput{
		Grammar: name,
		Index:   state.Index,
		Failed:  state.Failed(),
		Error:   state.ErrorMessage(),
		Result:  jsonable(state.Result),
	})
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if opts.selectPath != "" {
		selected := gjson.GetBytes(out, opts.selectPath)
		if !selected.Exists() {
			return fmt.Errorf("%w: %s", errPathNotFound, opts.selectPath)
		}
		out = []byte(selected.Raw)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if state.Failed() {
		return errParseFailed
	}
	return nil
}

func newLogger(trace bool) (*zap.Logger, error) {
	if !trace {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", errTooManyInputs
	case len(args) > 0:
		return args[0], nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}

func toInput(raw string, binary bool) (pcomb.Input, error) {
	if !binary {
		return pcomb.NewText(raw), nil
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	b, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return pcomb.Binary(b), nil
}

// jsonable rewrites parse results into values with a readable JSON form:
// tagged fields become {"name", "value"} objects and bytes become hex.
func jsonable(v any) any {
	switch v := v.(type) {
	case pcomb.Field:
		return map[string]any{"name": v.Name, "value": jsonable(v.Value)}
	case []any:
		return lo.Map(v, func(item any, _ int) any { return jsonable(item) })
	case []byte:
		return hex.EncodeToString(v)
	default:
		return v
	}
}
