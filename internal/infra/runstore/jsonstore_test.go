package runstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aalvaropc/brcstream/internal/domain"
)

func sampleReport(start time.Time) domain.ReportArtifact {
	return domain.ReportArtifact{
		Source:     "data/Measurements 1B.txt",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		Stats:      domain.RunStats{Bytes: 42, Chunks: 1, Lines: 4, Accepted: 3, Rejected: 1, Stations: 2},
		Stations: []domain.StationSummary{
			{Name: "Cesis", Min: 10, Mean: 17.3, Max: 30, Count: 3, Sum: 52},
			{Name: "Riga", Min: 12, Mean: 18, Max: 22, Count: 2, Sum: 36},
		},
	}
}

func TestSaveReport_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if id != "20260203T101112Z_measurements-1b" {
		t.Fatalf("unexpected id %q", id)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "runs", id+".json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.ReportArtifact
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != id {
		t.Fatalf("expected id persisted, got %q", decoded.ID)
	}
	if len(decoded.Stations) != 2 || decoded.Stations[1].Mean != 18 {
		t.Fatalf("unexpected stations: %+v", decoded.Stations)
	}
	if decoded.Stats.Rejected != 1 {
		t.Fatalf("expected stats persisted, got %+v", decoded.Stats)
	}

	if _, err := os.Stat(filepath.Join(tmp, "runs", id+".json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected tmp file removed, stat err=%v", err)
	}
}

func TestSaveReport_UsesCustomRunsDirAndClock(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Paths.RunsDir = "reports"

	now := time.Date(2026, 10, 19, 7, 0, 0, 0, time.FixedZone("EEST", 3*3600))
	store := NewJSONStore(tmp, cfg, WithNow(func() time.Time { return now }))

	rep := sampleReport(time.Time{})
	rep.Source = ""
	id, err := store.SaveReport(rep)
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if id != "20261019T040000Z_report" {
		t.Fatalf("unexpected id %q", id)
	}
	if _, err := os.Stat(filepath.Join(tmp, "reports", id+".json")); err != nil {
		t.Fatalf("expected file under reports/: %v", err)
	}
}

func TestSaveReport_UsesUniqueFilenameOnCollision(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id1, err := store.SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("SaveReport #1 error: %v", err)
	}
	id2, err := store.SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("SaveReport #2 error: %v", err)
	}
	if id2 != id1+"_2" {
		t.Fatalf("expected second id %q, got %q", id1+"_2", id2)
	}
}

func TestSaveReport_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id1, _ := store.SaveReport(sampleReport(start))
	id2, _ := store.SaveReport(sampleReport(start.Add(time.Hour)))

	refs, err := store.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex error: %v", err)
	}
	if len(refs) != 2 || refs[0].ID != id1 || refs[1].ID != id2 {
		t.Fatalf("unexpected index: %+v", refs)
	}
	if refs[0].Stations != 2 || refs[0].File != id1+".json" {
		t.Fatalf("unexpected index entry: %+v", refs[0])
	}
}

func TestListAndLoadReports(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	refs, err := store.ListReports()
	if err != nil || len(refs) != 0 {
		t.Fatalf("expected empty list before any save, got %v (%v)", refs, err)
	}

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	older, _ := store.SaveReport(sampleReport(start))
	newer, _ := store.SaveReport(sampleReport(start.Add(time.Minute)))

	refs, err = store.ListReports()
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(refs) != 2 || refs[0].ID != newer || refs[1].ID != older {
		t.Fatalf("expected newest first, got %+v", refs)
	}

	rep, err := store.LoadReport(older)
	if err != nil {
		t.Fatalf("LoadReport error: %v", err)
	}
	if rep.Source != "data/Measurements 1B.txt" || len(rep.Stations) != 2 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestLoadReport_Errors(t *testing.T) {
	store := NewJSONStore(t.TempDir(), domain.DefaultConfig())

	if _, err := store.LoadReport("missing"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.LoadReport("../etc/passwd"); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid id, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Measurements 1B": "measurements-1b",
		"  __weird..name": "weird-name",
		"ÅÄÖ":             "",
		"a--b":            "a-b",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
