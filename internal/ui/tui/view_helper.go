package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/usecase/report"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderStationDetails(t Theme, name string, s domain.StationStats) string {
	rows := []struct{ label, value string }{
		{"Min", report.FormatNumber(s.Min)},
		{"Mean", report.FormatNumber(report.Value(s))},
		{"Max", report.FormatNumber(s.Max)},
		{"Count", fmt.Sprintf("%d", s.Count)},
		{"Sum", report.FormatNumber(s.Sum)},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(t.Label.Render(r.label))
		b.WriteString(r.value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(report.FormatLine(name, s))
	b.WriteString("\n")

	return b.String()
}

func renderRunStats(rep domain.Report) string {
	st := rep.Stats
	d := rep.FinishedAt.Sub(rep.StartedAt)
	if rep.StartedAt.IsZero() || rep.FinishedAt.IsZero() {
		d = 0
	}
	return fmt.Sprintf("%d stations • %d lines (%d rejected) • %d bytes in %d chunks • %s",
		st.Stations, st.Lines, st.Rejected, st.Bytes, st.Chunks, d.Round(time.Millisecond))
}
