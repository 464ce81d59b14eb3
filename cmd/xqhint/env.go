package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"xqhint/internal/config"
	"xqhint/internal/paths"
	"xqhint/internal/slogutil"
	"xqhint/internal/workspace"
)

// env is what every command needs: a resolved root, its configuration and a
// logger. Close releases the log files opened for it.
type env struct {
	root    string
	cfg     *config.Config
	logger  *slog.Logger
	factory *slogutil.LoggerFactory
}

// getProjectRoot resolves --root, defaulting to the working directory.
func getProjectRoot() (string, error) {
	if rootFlag != "" {
		return filepath.Abs(rootFlag)
	}
	return os.Getwd()
}

// cliLevel is the level the -v/-q flags ask for, or nil when neither was
// given so the config file decides.
func cliLevel() *slog.Level {
	if verbosity == 0 && !quietFlag {
		return nil
	}
	level := slogutil.LevelFromVerbosity(verbosity, quietFlag)
	return &level
}

// newEnv loads configuration for the project root. A broken config file is
// reported and replaced by the defaults. Projects with a state directory also
// get a log file under it.
func newEnv(logOut io.Writer) (*env, error) {
	root, err := getProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("cannot determine project root: %w", err)
	}

	cfg, loadErr := config.LoadConfig(root)
	if loadErr == nil {
		loadErr = cfg.Validate()
	}
	if loadErr != nil {
		cfg = config.DefaultConfig()
	}

	factory := slogutil.NewLoggerFactory(root, cfg, cliLevel())
	logger := factory.Logger(logOut)
	if info, err := os.Stat(paths.StateDir(root)); err == nil && info.IsDir() {
		logger = factory.ProjectLogger(logOut)
	}
	if loadErr != nil {
		logger.Warn("Failed to load config, using defaults", "error", loadErr)
	}
	return &env{root: root, cfg: cfg, logger: logger, factory: factory}, nil
}

func (e *env) workspace() (*workspace.Workspace, error) {
	return workspace.New(e.root, workspace.Options{
		IgnoreDirs:       e.cfg.Corpus.IgnoreDirs,
		MaxFileSizeBytes: e.cfg.Corpus.MaxFileSizeBytes,
		CacheEntries:     e.cfg.Corpus.CacheEntries,
	}, e.logger)
}

func (e *env) Close() error {
	return e.factory.Close()
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}
