package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/brcstream/internal/domain"
)

// userMessage turns an error into the single line printed on exit.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return err.Error()
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		switch {
		case strings.HasPrefix(oe.Op, "filesource"):
			return "measurement file not found: " + oe.Path
		case strings.HasPrefix(oe.Op, "runstore"):
			return "report not found: " + strings.TrimSuffix(filepath.Base(oe.Path), ".json")
		case strings.HasPrefix(oe.Op, "workspacefinder"):
			return "workspace not found (tip: run `brcstream init`)"
		case strings.HasPrefix(oe.Op, "query"):
			return "jsonpath matched nothing"
		}
		return "not found"

	case domain.KindInvalidConfig:
		if oe.Path != "" {
			return fmt.Sprintf("invalid %s: %v", filepath.Base(oe.Path), oe.Err)
		}
		return fmt.Sprintf("invalid input: %v", oe.Err)

	case domain.KindCanceled:
		return "canceled"

	case domain.KindMissingVar:
		return fmt.Sprintf("template: %v", oe.Err)

	default:
		return err.Error()
	}
}
