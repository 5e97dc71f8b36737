package main

import (
	"fmt"

	"github.com/SimonDaKappa/go-pcomb/grammars"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the available grammars",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range grammars.NewCatalog(nil).Rules() {
				input := "text"
				if grammars.IsBinary(name) {
					input = "binary"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, input)
			}
			return nil
		},
	}
}
