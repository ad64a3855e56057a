package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"restlab/internal/config"
)

// resolveConfig loads an explicit config path or finds one from CWD.
// Without any config file the defaults rooted at CWD are returned with an
// empty path.
func resolveConfig(configPath string) (config.Config, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("resolve working directory: %w", err)
	}
	explicit := strings.TrimSpace(configPath)
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("resolve config path: %w", err)
		}
		explicit = abs
	}
	return config.Resolve(explicit, wd)
}
