package main

import (
	"fmt"
	"strconv"

	"github.com/SimonDaKappa/go-pcomb/grammars"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "eval <expression>",
		Short:         "Evaluate a prefix arithmetic expression such as \"(+ (* 10 2) (- 10 2))\"",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := grammars.Interpret(args[0])
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
			return nil
		},
	}
}
