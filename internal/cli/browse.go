package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/brcstream/internal/infra/logger"
	"github.com/aalvaropc/brcstream/internal/ui/tui"
)

func browseCmd(g *rootOptions) *cobra.Command {
	var chunkSize int

	c := &cobra.Command{
		Use:   "browse [file]",
		Short: "Process a measurements file and browse stations interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			defer startLogging(ws, g.debug)()

			size := ws.cfg.Input.ChunkSize
			if cmd.Flags().Changed("chunk-size") && chunkSize > 0 {
				size = chunkSize
			}

			return tui.Run(tui.Deps{
				Source:    ws.source,
				Path:      inputPath(ws, args),
				ChunkSize: size,
				Logger:    logger.Component("tui"),
				Debug:     g.debug,
			})
		},
	}

	c.Flags().IntVar(&chunkSize, "chunk-size", 0, "Bytes per read (default from config)")
	return c
}
