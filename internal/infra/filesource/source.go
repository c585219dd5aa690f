package filesource

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/ports"
)

// Source opens measurement files from the local filesystem.
type Source struct{}

func New() *Source {
	return &Source{}
}

var _ ports.MeasurementSource = (*Source)(nil)

func (s *Source) Open(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
			err = fmt.Errorf("file does not exist: %w", domain.ErrNotFound)
		}
		return nil, &domain.OpError{
			Op:   "filesource.open",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}
	if info.IsDir() {
		return nil, &domain.OpError{
			Op:   "filesource.open",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.New("path is a directory"),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "filesource.open",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return f, nil
}
