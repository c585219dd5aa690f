package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/brcstream/internal/domain"
)

// FileName is the workspace configuration file.
const FileName = "brcstream.yaml"

// LoadFile reads and maps one configuration file. On error the returned
// config still holds the defaults.
func LoadFile(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, dto)
}
