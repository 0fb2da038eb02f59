package platform

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
)

// ConfigNames are the file names FindConfig looks for, in order.
var ConfigNames = []string{"notebox.yaml", ".notebox.yaml"}

// ErrConfigNotFound is returned by FindConfig when no config file exists up to the filesystem root.
var ErrConfigNotFound = errors.New("config file not found")

// FindConfig recursively looks upwards from startDir for a config file.
// If found, returns its absolute path.
func FindConfig(fs afero.Fs, startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range ConfigNames {
			if hasFile(fs, filepath.Join(dir, name)) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrConfigNotFound
}

func hasFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}
