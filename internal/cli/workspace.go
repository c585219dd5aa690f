package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/infra/filesource"
	"github.com/aalvaropc/brcstream/internal/infra/logger"
	"github.com/aalvaropc/brcstream/internal/infra/runstore"
	"github.com/aalvaropc/brcstream/internal/infra/workspacefinder"
	"github.com/aalvaropc/brcstream/internal/ports"
)

type workspaceCtx struct {
	root  string
	found bool
	cfg   domain.Config

	source ports.MeasurementSource
	store  *runstore.JSONStore
}

// loadWorkspace resolves the workspace and its config. Without a workspace
// the current directory is used with default settings.
func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	found := err == nil
	if err != nil {
		if strings.TrimSpace(workspaceFlag) != "" || !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("get working directory: %w", wdErr)
		}
		root = wd
	}

	cfg := domain.DefaultConfig()
	if found {
		cfg, err = workspacefinder.LoadConfig(root)
		if err != nil && !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
	}

	return &workspaceCtx{
		root:   root,
		found:  found,
		cfg:    cfg,
		source: filesource.New(),
		store:  runstore.NewJSONStore(root, cfg, runstore.WithIndex(true)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return workspacefinder.NewFinder().FindRoot(wd)
}

// startLogging opens the workspace log file. Without a workspace nothing is
// written unless debug is set.
func startLogging(ws *workspaceCtx, debug bool) func() {
	if !ws.found && !debug {
		return func() {}
	}

	cleanup, err := logger.Setup(logger.Config{Root: ws.root, Debug: debug})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}

// inputPath picks the file argument, or the configured default resolved
// against the workspace root.
func inputPath(ws *workspaceCtx, args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}

	p := ws.cfg.Input.DefaultPath
	if !filepath.IsAbs(p) {
		p = filepath.Join(ws.root, p)
	}
	return filepath.Clean(p)
}
