package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/brcstream/internal/usecase"
)

// cmdProcess runs the whole pipeline off the UI loop and reports back once.
func cmdProcess(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Source == nil {
			return processDoneMsg{err: errors.New("MeasurementSource is nil")}
		}

		log := deps.Logger
		if log == nil {
			log = slog.Default()
		}

		uc := usecase.NewProcessFile(
			deps.Source,
			usecase.WithChunkSize(deps.ChunkSize),
			usecase.WithLogger(log),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		rep, _, err := uc.Execute(ctx, deps.Path)
		if err != nil {
			log.Error("browse.process_failed", "path", deps.Path, "err", err)
		} else if deps.Debug {
			log.Debug("browse.ready", "path", deps.Path, "stations", rep.Stats.Stations)
		}
		return processDoneMsg{report: rep, err: err}
	}
}
