package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds dictionary files relative to the places a user
// is likely to keep them.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a resolver for the named application.
func NewPathResolver(appName string) (*PathResolver, error) {
	execDir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	if resolved, err := filepath.EvalSymlinks(execDir); err == nil {
		execDir = resolved
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		configDir:     platformConfigDir(homeDir, appName),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir, appName string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		return filepath.Join(homeDir, ".config", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		return filepath.Join(homeDir, ".config", appName)
	}
}

// ConfigDir returns the platform config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// Candidates lists the locations tried for a file, in order:
// absolute path, working dir, executable dir, config dir.
func (pr *PathResolver) Candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, name))
	}
	paths = append(paths,
		filepath.Join(pr.executableDir, name),
		filepath.Join(pr.configDir, name),
	)
	return paths
}

// ResolveFile returns the first candidate that exists.
func (pr *PathResolver) ResolveFile(name string) (string, error) {
	for _, path := range pr.Candidates(name) {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Resolved %s to %s", name, path)
			return path, nil
		}
		log.Debugf("Candidate not found: %s", path)
	}
	return "", fmt.Errorf("%s not found in working, executable or config dir", name)
}
