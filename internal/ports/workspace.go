package ports

import "github.com/aalvaropc/brcstream/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
