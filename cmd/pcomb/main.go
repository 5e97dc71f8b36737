// Command pcomb runs the example grammars from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pcomb",
		Short: "Run parser combinator grammars over text or binary input",
	}

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newEvalCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// The JSON state already describes a failed parse.
		if !errors.Is(err, errParseFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
