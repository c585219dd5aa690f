package tui

import (
	"log/slog"

	"github.com/aalvaropc/brcstream/internal/ports"
)

type Deps struct {
	Source    ports.MeasurementSource
	Path      string
	ChunkSize int

	Logger *slog.Logger
	Debug  bool
}
