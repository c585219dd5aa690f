package tui

import "github.com/aalvaropc/brcstream/internal/domain"

type processDoneMsg struct {
	report domain.Report
	err    error
}
