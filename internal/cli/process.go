package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/infra/config"
	"github.com/aalvaropc/brcstream/internal/infra/logger"
	"github.com/aalvaropc/brcstream/internal/usecase"
	"github.com/aalvaropc/brcstream/internal/usecase/query"
	"github.com/aalvaropc/brcstream/internal/usecase/report"
)

type processOptions struct {
	format    string
	chunkSize int
	save      bool
	jsonPath  string
	template  string
}

func (o *processOptions) bind(c *cobra.Command) {
	c.Flags().StringVar(&o.format, "format", "", "Output format: text|json (default from config)")
	c.Flags().IntVar(&o.chunkSize, "chunk-size", 0, "Bytes per read (default from config)")
	c.Flags().BoolVar(&o.save, "save", false, "Save a report artifact under runs/")
	c.Flags().StringVar(&o.jsonPath, "jsonpath", "", "JSONPath expression applied to the json output")
	c.Flags().StringVar(&o.template, "template", "", "Per-station line template, e.g. \"{{name}}: {{mean}}\"")
}

func processCmd(g *rootOptions) *cobra.Command {
	var po processOptions

	c := &cobra.Command{
		Use:   "process [file]",
		Short: "Process a measurements file and print the per-station report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, g, po, args)
		},
	}

	po.bind(c)
	return c
}

// printOptions is the resolved output configuration of one run.
type printOptions struct {
	Format   string
	Template string
	JSONPath string
}

func runProcess(cmd *cobra.Command, g *rootOptions, po processOptions, args []string) error {
	ws, err := loadWorkspace(g.workspace)
	if err != nil {
		return err
	}
	defer startLogging(ws, g.debug)()

	out, save, chunkSize, err := resolveProcessOptions(cmd, ws.cfg, po)
	if err != nil {
		return err
	}

	opts := []usecase.ProcessOption{
		usecase.WithChunkSize(chunkSize),
		usecase.WithLogger(logger.Component("process")),
	}
	if save {
		opts = append(opts, usecase.WithStore(ws.store))
	}

	uc := usecase.NewProcessFile(ws.source, opts...)
	rep, err := uc.Run(cmd.Context(), inputPath(ws, args))
	if err != nil {
		return err
	}

	// json output carries the report id, so it is saved first there. Either
	// way the report is printed even when the save fails.
	var id string
	var saveErr error
	if out.Format == domain.FormatJSON {
		id, saveErr = uc.Save(rep)
	}
	if err := printReport(cmd.OutOrStdout(), rep, id, out); err != nil {
		return err
	}
	if out.Format != domain.FormatJSON {
		id, saveErr = uc.Save(rep)
	}
	if saveErr != nil {
		return saveErr
	}

	if id != "" && out.Format != domain.FormatJSON {
		fmt.Fprintf(cmd.ErrOrStderr(), "report saved: %s\n", id)
	}
	return nil
}

// resolveProcessOptions lets explicit flags win over the workspace config.
func resolveProcessOptions(cmd *cobra.Command, cfg domain.Config, po processOptions) (printOptions, bool, int, error) {
	out := printOptions{
		Format:   cfg.Output.Format,
		Template: cfg.Output.Template,
		JSONPath: po.jsonPath,
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		f, err := config.ParseFormat(po.format)
		if err != nil {
			return out, false, 0, &domain.OpError{Op: "cli.flags", Kind: domain.KindInvalidConfig, Err: err}
		}
		out.Format = f
	}
	if flags.Changed("template") {
		if err := report.ValidateTemplate(po.template); err != nil {
			return out, false, 0, err
		}
		out.Template = po.template
	}

	if out.JSONPath != "" {
		if flags.Changed("format") && out.Format != domain.FormatJSON {
			return out, false, 0, &domain.OpError{
				Op:   "cli.flags",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("--jsonpath requires --format json"),
			}
		}
		out.Format = domain.FormatJSON
	}

	save := cfg.Reports.Save
	if flags.Changed("save") {
		save = po.save
	}

	chunkSize := cfg.Input.ChunkSize
	if flags.Changed("chunk-size") {
		if po.chunkSize <= 0 {
			return out, false, 0, &domain.OpError{
				Op:   "cli.flags",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("--chunk-size must be > 0, got %d", po.chunkSize),
			}
		}
		chunkSize = po.chunkSize
	}

	return out, save, chunkSize, nil
}

// reportOutput is the json shape of a processed report.
type reportOutput struct {
	ID       string                  `json:"id,omitempty"`
	Source   string                  `json:"source"`
	Stats    domain.RunStats         `json:"stats"`
	Stations []domain.StationSummary `json:"stations"`
}

func printReport(w io.Writer, rep domain.Report, id string, opts printOptions) error {
	switch opts.Format {
	case domain.FormatJSON:
		payload := reportOutput{
			ID:       id,
			Source:   rep.Source,
			Stats:    rep.Stats,
			Stations: report.Summaries(rep.Stations),
		}
		return printJSON(w, payload, opts.JSONPath)

	case domain.FormatText, "":
		lines := report.Lines(rep.Stations)
		if opts.Template != "" {
			var err error
			lines, err = report.TemplateLines(rep.Stations, opts.Template)
			if err != nil {
				return err
			}
		}
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
		return nil

	default:
		return fmt.Errorf("unsupported format %q (expected text|json)", opts.Format)
	}
}

// printJSON writes v as indented JSON, narrowed by expr when one is given.
func printJSON(w io.Writer, v any, expr string) error {
	if expr != "" {
		sel, err := query.SelectValue(v, expr)
		if err != nil {
			return err
		}
		v = sel
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
