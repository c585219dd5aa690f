package config

// YAMLConfig mirrors brcstream.yaml. Pointers distinguish "unset" from zero values.
type YAMLConfig struct {
	BRCStream YAMLRoot `yaml:"brcstream"`
}

type YAMLRoot struct {
	Input   YAMLInput   `yaml:"input"`
	Output  YAMLOutput  `yaml:"output"`
	Reports YAMLReports `yaml:"reports"`
	Paths   YAMLPaths   `yaml:"paths"`
}

type YAMLInput struct {
	DefaultPath string `yaml:"default_path"`
	ChunkSize   *int   `yaml:"chunk_size"`
}

type YAMLOutput struct {
	Format   string `yaml:"format"`
	Template string `yaml:"template"`
}

type YAMLReports struct {
	Save *bool `yaml:"save"`
}

type YAMLPaths struct {
	RunsDir string `yaml:"runs_dir"`
}
