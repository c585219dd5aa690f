package ports

import "io"

// MeasurementSource opens a measurement stream by path (e.g., a file on disk).
// A missing source must be reported before any byte is read.
type MeasurementSource interface {
	Open(path string) (io.ReadCloser, error)
}
