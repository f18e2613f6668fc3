package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Info pairs a discovered scenario's directory with its parsed metadata.
type Info struct {
	Path   string
	Config Config
}

// Discover finds every scenario.yaml under the project's cmd directory.
// Unparseable files are reported as warnings and skipped.
func Discover() ([]Info, error) {
	rootDir, err := findProjectRoot()
	if err != nil {
		return nil, err
	}

	var infos []Info
	cmdDir := filepath.Join(rootDir, "cmd")
	err = filepath.Walk(cmdDir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.Name() != "scenario.yaml" {
			return nil
		}
		info, err := loadInfo(path)
		if err != nil {
			fmt.Printf("Warning: failed to load %s: %v\n", path, err)
			return nil
		}
		infos = append(infos, *info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for scenarios: %w", err)
	}

	return infos, nil
}

func loadInfo(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario config: %w", err)
	}

	return &Info{Path: filepath.Dir(path), Config: cfg}, nil
}

// findProjectRoot walks up from the working directory until it finds
// go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (no go.mod found)")
		}
		dir = parent
	}
}
