// Command asmkit assembles one or more source files into their
// object, entry, and extern outputs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"asmkit/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "asmkit NAME...",
	Short: "Assembles NAME.as into NAME.ob, NAME.ent, and NAME.ext",
	Long: `asmkit reads one or more base names, each implying an input file
NAME.as, and produces NAME.ob (and NAME.ent/NAME.ext where applicable) for
each one that assembles without a diagnostic.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := true
		for _, base := range args {
			if !session.Run(base) {
				ok = false
				continue
			}
			fmt.Printf("%s -> %s.ob, %s.ent, %s.ext\n", base, base, base, base)
		}
		if !ok {
			return fmt.Errorf("one or more inputs failed to assemble")
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
