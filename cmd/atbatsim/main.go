// Command atbatsim is the CLI embedding harness around the simulation
// core: it loads fixtures, runs batches of plate appearances, and prints
// outcome distributions or statistical-validity reports. None of this
// belongs to the core itself (section 6: "no wire protocol or CLI surface
// is part of the core").
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "atbatsim"})

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atbatsim",
		Short: "Run and validate at-bat plate-appearance simulations",
	}
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
