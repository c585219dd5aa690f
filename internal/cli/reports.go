package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func reportsCmd(g *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "reports",
		Short: "Inspect saved report artifacts",
	}

	c.AddCommand(reportsListCmd(g), reportsShowCmd(g))
	return c
}

func reportsListCmd(g *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			refs, err := ws.store.ListReports()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no reports found)")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tSTATIONS\tSOURCE")
			for _, r := range refs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.StartedAt.Format(time.RFC3339), r.Stations, r.Source)
			}
			return tw.Flush()
		},
	}
}

func reportsShowCmd(g *rootOptions) *cobra.Command {
	var jsonPath string

	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			rep, err := ws.store.LoadReport(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep, jsonPath)
		},
	}

	c.Flags().StringVar(&jsonPath, "jsonpath", "", "JSONPath expression applied to the report")
	return c
}
