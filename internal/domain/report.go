package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// RunStats are the counters collected while a stream is processed.
type RunStats struct {
	Bytes    int64 `json:"bytes"`
	Chunks   int64 `json:"chunks"`
	Lines    int64 `json:"lines"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
	Stations int   `json:"stations"`
}

// Report is the result of processing one measurement source.
type Report struct {
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time

	Stations StationMap
	Stats    RunStats
}

// StationSummary is the rendered, order-preserving view of one station.
// Mean holds the value printed between min and max.
type StationSummary struct {
	Name  string  `json:"name"`
	Min   float64 `json:"min"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
	Sum   float64 `json:"sum"`
}

// stationSummaryJSON is the wire form of StationSummary. Numbers that JSON
// cannot carry are written as the strings "Infinity", "-Infinity" or "NaN".
type stationSummaryJSON struct {
	Name  string `json:"name"`
	Min   any    `json:"min"`
	Mean  any    `json:"mean"`
	Max   any    `json:"max"`
	Count int64  `json:"count"`
	Sum   any    `json:"sum"`
}

func (s StationSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(stationSummaryJSON{
		Name:  s.Name,
		Min:   jsonNumber(s.Min),
		Mean:  jsonNumber(s.Mean),
		Max:   jsonNumber(s.Max),
		Count: s.Count,
		Sum:   jsonNumber(s.Sum),
	})
}

func (s *StationSummary) UnmarshalJSON(b []byte) error {
	var w stationSummaryJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	out := StationSummary{Name: w.Name, Count: w.Count}
	for _, f := range []struct {
		dst *float64
		src any
		key string
	}{
		{&out.Min, w.Min, "min"},
		{&out.Mean, w.Mean, "mean"},
		{&out.Max, w.Max, "max"},
		{&out.Sum, w.Sum, "sum"},
	} {
		v, err := fromJSONNumber(f.src)
		if err != nil {
			return fmt.Errorf("station %q %s: %w", w.Name, f.key, err)
		}
		*f.dst = v
	}

	*s = out
	return nil
}

func jsonNumber(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	default:
		return v
	}
}

func fromJSONNumber(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case string:
		switch t {
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		case "NaN":
			return math.NaN(), nil
		}
	}
	return 0, fmt.Errorf("unsupported number %v", v)
}

// ReportArtifact represents a persisted report.
type ReportArtifact struct {
	ID string `json:"id,omitempty"`

	Source     string    `json:"source"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Stats    RunStats         `json:"stats"`
	Stations []StationSummary `json:"stations"`
}

// ReportRef points at a stored report artifact.
type ReportRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Source    string    `json:"source"`
	StartedAt time.Time `json:"started_at"`
	Stations  int       `json:"stations"`
}

// WorkspaceSpec describes where a workspace is created.
type WorkspaceSpec struct {
	Root string
}
