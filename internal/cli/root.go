package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	workspace string
	debug     bool
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &rootOptions{}
	var po processOptions

	cmd := &cobra.Command{
		Use:           "brcstream [file]",
		Short:         "brcstream: per-station min/mean/max over a measurements stream",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, g, po, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .brcstream/logs/brcstream.log")
	po.bind(cmd)

	cmd.AddCommand(
		processCmd(g),
		browseCmd(g),
		reportsCmd(g),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
