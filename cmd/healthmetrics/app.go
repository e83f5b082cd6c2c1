package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/healthmetrics/internal/catalog"
	"github.com/dshills/healthmetrics/internal/registry"
)

// app holds state shared by every command once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg *viper.Viper
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath, cmd.Flags())
	if err != nil {
		return codeError(exitInput, "loading config: %s", err)
	}
	a.cfg = cfg

	level, err := log.ParseLevel(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return codeError(exitInput, "invalid log level %q", cfg.GetString(cfgKeyLogLevel))
	}
	if a.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level)
	cmd.SetContext(withLogger(cmd.Context(), logger))

	if used := cfg.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config", "file", used)
	}
	return nil
}

// catalogPaths returns the configured catalog files.
func (a *app) catalogPaths() []string {
	return splitList(a.cfg.GetStringSlice(cfgKeyCatalogs))
}

// loadCatalogs reads every configured catalog file.
func (a *app) loadCatalogs(logger *log.Logger) ([]*catalog.File, error) {
	paths := a.catalogPaths()
	files, err := catalog.LoadAll(paths)
	if err != nil {
		return nil, codeError(exitInput, "loading catalogs: %s", err)
	}
	for _, f := range files {
		logger.Debug("loaded catalog", "path", f.Path, "hash", f.Hash, "categories", len(f.Categories))
	}
	return files, nil
}

// loadRegistry builds the registry from the built-in categories and the
// configured catalog files. Any critical violation aborts with exit 3.
func (a *app) loadRegistry(logger *log.Logger) (*registry.Registry, []*catalog.File, error) {
	start := time.Now()
	files, err := a.loadCatalogs(logger)
	if err != nil {
		return nil, nil, err
	}
	reg, err := registry.Load(files...)
	if err != nil {
		return nil, nil, codeError(exitInput, "building registry: %s", err)
	}
	logger.Debug("registry ready",
		"categories", len(reg.Categories()),
		"data_types", len(reg.DataTypes()),
		"metrics", reg.MetricCount(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return reg, files, nil
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return codeError(exitInput, "writing output file: %s", err)
		}
		return nil
	}
	w := cmd.OutOrStdout()
	if _, err := w.Write(data); err != nil {
		return codeError(exitInput, "writing output: %s", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}
