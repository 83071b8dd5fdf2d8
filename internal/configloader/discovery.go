package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the system and user config directories.
const appName = "qdiff"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/qdiff/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/qdiff/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.qdiff.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// Shadowed lists config files that sit next to a chosen one and are
	// ignored because of it.
	Shadowed []Shadowed
}

// Shadowed is a config file ignored in favor of another in the same directory.
type Shadowed struct {
	Path  string
	Using string
}

// Within one directory the first existing name wins: YAML is preferred over
// TOML, and the short extension over the long one.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{".qdiff.yml", ".qdiff.yaml", ".qdiff.toml"}
	dirConfigFiles     = []string{"config.yaml", "config.yml", "config.toml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds configuration files in standard locations:
//   - system: /etc/qdiff/config.{yaml,yml,toml} (%ProgramData%\qdiff on Windows)
//   - user: $XDG_CONFIG_HOME/qdiff/config.{yaml,yml,toml}
//   - project: .qdiff.{yml,yaml,toml} in workDir or a parent, up to a VCS
//     root or the home directory
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{}
	pick := func(dir string, names []string) string {
		chosen, shadowed := configIn(dir, names)
		for _, path := range shadowed {
			paths.Shadowed = append(paths.Shadowed, Shadowed{Path: path, Using: chosen})
		}
		return chosen
	}

	paths.System = pick(systemConfigDir(), dirConfigFiles)
	if dir := userConfigDir(); dir != "" {
		paths.User = pick(dir, dirConfigFiles)
	}

	projectDir, err := findProjectDir(ctx, workDir)
	if err != nil {
		return nil, err
	}
	if projectDir != "" {
		paths.Project = pick(projectDir, projectConfigFiles)
	}

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// configIn returns the preferred config file in dir and the other candidates
// that exist there.
func configIn(dir string, names []string) (string, []string) {
	var chosen string
	var shadowed []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if !fileExists(path) {
			continue
		}
		if chosen == "" {
			chosen = path
		} else {
			shadowed = append(shadowed, path)
		}
	}
	return chosen, shadowed
}

// FindProjectConfig searches upward from startDir for a project config file
// and returns its path, or "" if there is none.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := findProjectDir(ctx, startDir)
	if err != nil || dir == "" {
		return "", err
	}
	chosen, _ := configIn(dir, projectConfigFiles)
	return chosen, nil
}

// findProjectDir returns the closest directory at or above startDir holding
// a project config file. The search stops after a VCS root, the home
// directory or the filesystem root.
func findProjectDir(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// Without a home directory there is simply no home boundary.
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if chosen, _ := configIn(dir, projectConfigFiles); chosen != "" {
			return dir, nil
		}
		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsTOMLConfig reports whether path names a TOML config file.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}

// IsYAMLConfig reports whether path names a YAML config file.
func IsYAMLConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
