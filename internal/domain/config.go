package domain

// Output formats understood by the report printers.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the brcstream configuration loaded from brcstream.yaml.
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	Reports ReportsConfig
	Paths   PathsConfig
}

type InputConfig struct {
	DefaultPath string
	ChunkSize   int
}

type OutputConfig struct {
	Format   string
	Template string
}

type ReportsConfig struct {
	Save bool
}

type PathsConfig struct {
	RunsDir string
}

// DefaultChunkSize matches the read size of a typical file stream.
const DefaultChunkSize = 64 * 1024

// DefaultConfig provides sane defaults if brcstream.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			DefaultPath: "measurements.txt",
			ChunkSize:   DefaultChunkSize,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Paths: PathsConfig{
			RunsDir: "runs",
		},
	}
}
