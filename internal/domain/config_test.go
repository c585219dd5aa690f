package domain

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Input.ChunkSize != DefaultChunkSize {
		t.Fatalf("expected chunk size %d, got %d", DefaultChunkSize, cfg.Input.ChunkSize)
	}
	if cfg.Output.Format != FormatText {
		t.Fatalf("expected text format, got %q", cfg.Output.Format)
	}
	if cfg.Paths.RunsDir != "runs" {
		t.Fatalf("expected runs dir, got %q", cfg.Paths.RunsDir)
	}
	if cfg.Reports.Save {
		t.Fatalf("expected reports not saved by default")
	}
}
