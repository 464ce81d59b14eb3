// Package paths resolves project-relative paths and the per-project state directory.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// StateDirName is the per-project directory holding config and logs.
const StateDirName = ".xqhint"

// CanonicalizePath converts an absolute path to a project-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to the project root
// - Returns the relative path with forward slashes
func CanonicalizePath(absolutePath string, projectRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		resolved = absolutePath
	}

	rootResolved, err := filepath.EvalSymlinks(projectRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		rootResolved = projectRoot
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsWithinProject checks if a path is within the project root
func IsWithinProject(path string, projectRoot string) bool {
	canonical, err := CanonicalizePath(path, projectRoot)
	if err != nil {
		return false
	}
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}

// NormalizePath converts backslashes to forward slashes
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// JoinProjectPath joins a project root with a canonical path
func JoinProjectPath(projectRoot string, canonicalPath string) string {
	parts := strings.Split(NormalizePath(canonicalPath), "/")
	return filepath.Join(append([]string{projectRoot}, parts...)...)
}

// Ext returns the extension of name without the leading dot, lowercased.
// "main.XQY" yields "xqy"; names without an extension yield "".
func Ext(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// StateDir returns <projectRoot>/.xqhint
func StateDir(projectRoot string) string {
	return filepath.Join(projectRoot, StateDirName)
}

// ConfigPath returns <projectRoot>/.xqhint/config.json
func ConfigPath(projectRoot string) string {
	return filepath.Join(StateDir(projectRoot), "config.json")
}

// LogPath returns <projectRoot>/.xqhint/logs/xqhint.log
func LogPath(projectRoot string) string {
	return filepath.Join(StateDir(projectRoot), "logs", "xqhint.log")
}

// EnsureLogsDir creates the logs directory if needed and returns its path
func EnsureLogsDir(projectRoot string) (string, error) {
	dir := filepath.Dir(LogPath(projectRoot))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
