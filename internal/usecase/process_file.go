package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/ports"
	"github.com/aalvaropc/brcstream/internal/usecase/aggregate"
	"github.com/aalvaropc/brcstream/internal/usecase/reassemble"
	"github.com/aalvaropc/brcstream/internal/usecase/report"
)

// ProcessFile streams one measurement source through reassembly, parsing and
// aggregation, and optionally persists the final report.
type ProcessFile struct {
	source    ports.MeasurementSource
	store     ports.ReportStore
	chunkSize int
	log       *slog.Logger
	now       func() time.Time
}

type ProcessOption func(*ProcessFile)

func WithChunkSize(n int) ProcessOption {
	return func(uc *ProcessFile) {
		if n > 0 {
			uc.chunkSize = n
		}
	}
}

// WithStore enables saving the report after a successful run.
func WithStore(store ports.ReportStore) ProcessOption {
	return func(uc *ProcessFile) { uc.store = store }
}

func WithLogger(l *slog.Logger) ProcessOption {
	return func(uc *ProcessFile) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) ProcessOption {
	return func(uc *ProcessFile) { uc.now = now }
}

func NewProcessFile(src ports.MeasurementSource, opts ...ProcessOption) *ProcessFile {
	uc := &ProcessFile{
		source:    src,
		chunkSize: domain.DefaultChunkSize,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the file through Run and then Save. The returned report is only
// meaningful when err is nil or when the save step alone failed.
// The report ID is empty unless a store is configured.
func (uc *ProcessFile) Execute(ctx context.Context, path string) (domain.Report, string, error) {
	rep, err := uc.Run(ctx, path)
	if err != nil {
		return domain.Report{}, "", err
	}

	id, err := uc.Save(rep)
	return rep, id, err
}

// Run processes path to completion without persisting anything. There is no
// partial result on a mid-stream failure.
func (uc *ProcessFile) Run(ctx context.Context, path string) (domain.Report, error) {
	rc, err := uc.source.Open(path)
	if err != nil {
		uc.log.Error("process.open_failed", "path", path, "err", err)
		return domain.Report{}, err
	}
	defer rc.Close()

	rep := domain.Report{
		Source:    path,
		StartedAt: uc.now(),
		Stations:  domain.StationMap{},
	}
	uc.log.Info("process.started", "path", path, "chunk_size", uc.chunkSize)

	st, err := reassemble.Stream(ctx, rc, uc.chunkSize, func(lines []string) error {
		accepted, rejected := aggregate.ApplyLines(lines, rep.Stations)
		rep.Stats.Lines += int64(len(lines))
		rep.Stats.Accepted += int64(accepted)
		rep.Stats.Rejected += int64(rejected)
		return nil
	})
	rep.Stats.Bytes = st.Bytes
	rep.Stats.Chunks = st.Chunks
	if err != nil {
		uc.log.Error("process.failed", "path", path, "bytes", st.Bytes, "err", err)
		return domain.Report{}, err
	}

	rep.FinishedAt = uc.now()
	rep.Stats.Stations = len(rep.Stations)

	uc.log.Info("process.finished",
		"path", path,
		"bytes", rep.Stats.Bytes,
		"chunks", rep.Stats.Chunks,
		"lines", rep.Stats.Lines,
		"accepted", rep.Stats.Accepted,
		"rejected", rep.Stats.Rejected,
		"stations", rep.Stats.Stations,
		"duration_ms", rep.FinishedAt.Sub(rep.StartedAt).Milliseconds(),
	)
	return rep, nil
}

// Save persists rep through the configured store. Without a store it is a no-op.
func (uc *ProcessFile) Save(rep domain.Report) (string, error) {
	if uc.store == nil {
		return "", nil
	}

	id, err := uc.store.SaveReport(Artifact(rep))
	if err != nil {
		uc.log.Error("report.save_failed", "path", rep.Source, "err", err)
		return "", err
	}
	uc.log.Info("report.saved", "id", id)
	return id, nil
}

// Artifact converts a report into its persisted form.
func Artifact(rep domain.Report) domain.ReportArtifact {
	return domain.ReportArtifact{
		Source:     rep.Source,
		StartedAt:  rep.StartedAt,
		FinishedAt: rep.FinishedAt,
		Stats:      rep.Stats,
		Stations:   report.Summaries(rep.Stations),
	}
}
