package config

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/usecase/report"
)

// MapConfig applies parsed values on top of domain defaults and validates them.
func MapConfig(path string, y YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	in := y.BRCStream

	if p := strings.TrimSpace(in.Input.DefaultPath); p != "" {
		cfg.Input.DefaultPath = p
	}
	if in.Input.ChunkSize != nil {
		if *in.Input.ChunkSize <= 0 {
			return cfg, invalidField(path, "input.chunk_size", fmt.Sprintf("must be positive, got %d", *in.Input.ChunkSize))
		}
		cfg.Input.ChunkSize = *in.Input.ChunkSize
	}

	if f := strings.TrimSpace(in.Output.Format); f != "" {
		format, err := ParseFormat(f)
		if err != nil {
			return cfg, invalidField(path, "output.format", err.Error())
		}
		cfg.Output.Format = format
	}
	if in.Output.Template != "" {
		if err := report.ValidateTemplate(in.Output.Template); err != nil {
			return cfg, invalidField(path, "output.template", err.Error())
		}
		cfg.Output.Template = in.Output.Template
	}

	if in.Reports.Save != nil {
		cfg.Reports.Save = *in.Reports.Save
	}
	if d := strings.TrimSpace(in.Paths.RunsDir); d != "" {
		cfg.Paths.RunsDir = d
	}

	return cfg, nil
}

// ParseFormat normalizes an output format name.
func ParseFormat(f string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case domain.FormatText, "":
		return domain.FormatText, nil
	case domain.FormatJSON:
		return domain.FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected text|json)", f)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
