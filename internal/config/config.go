// Package config holds the converter's run options and their validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults for options the CLI does not override.
const (
	DefaultOutputDir   = "out"
	DefaultConcurrency = 4
	DefaultHeroPath    = "../../defaultHero.png"
)

// DefaultCanonicalHosts are the host prefixes stripped from a post's
// canonical link when deriving its redirect source path.
var DefaultCanonicalHosts = []string{
	"https://swizec.com",
	"https://www.swizec.com",
}

// Options holds one conversion run's configuration.
type Options struct {
	// ExportPath is the WXR export document to read.
	ExportPath string
	// OutputDir receives the .mdx files, per-post image directories,
	// and the conversion log.
	OutputDir string
	// Limit caps how many posts are processed; 0 means no cap.
	Limit int
	// Overwrite permits reuse of an existing non-empty output directory.
	Overwrite bool
	// Insecure disables TLS certificate verification for image downloads.
	// Off by default; some legacy image hosts serve self-signed certificates.
	Insecure bool
	// Concurrency bounds how many posts convert at once.
	Concurrency int
	// LogLevel is the minimum diagnostic level (debug, info, warn, error).
	LogLevel string
	// CanonicalHosts are prefixes stripped from canonical links for
	// redirect_from front matter entries.
	CanonicalHosts []string
	// HeroFallback is the hero image reference used when a post has no
	// suitable localized image.
	HeroFallback string
}

// New returns Options populated with defaults.
func New() *Options {
	return &Options{
		OutputDir:      DefaultOutputDir,
		Concurrency:    DefaultConcurrency,
		LogLevel:       "info",
		CanonicalHosts: DefaultCanonicalHosts,
		HeroFallback:   DefaultHeroPath,
	}
}

// Resolve expands both paths and validates the options. It must be called
// before the options are used.
func (o *Options) Resolve() error {
	if o.ExportPath == "" {
		return errors.New("export file is required")
	}

	exportPath, err := expandPath(o.ExportPath)
	if err != nil {
		return fmt.Errorf("invalid export path: %w", err)
	}
	o.ExportPath = exportPath

	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	outputDir, err := expandPath(o.OutputDir)
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	o.OutputDir = outputDir

	if o.Limit < 0 {
		o.Limit = 0
	}
	if o.Concurrency < 1 {
		o.Concurrency = DefaultConcurrency
	}
	if len(o.CanonicalHosts) == 0 {
		o.CanonicalHosts = DefaultCanonicalHosts
	}
	if o.HeroFallback == "" {
		o.HeroFallback = DefaultHeroPath
	}

	return o.validate()
}

// validate checks that resolved options are usable.
func (o *Options) validate() error {
	info, err := os.Stat(o.ExportPath)
	if err != nil {
		return fmt.Errorf("export file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("export file %s is a directory", o.ExportPath)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(o.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", o.LogLevel)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}
