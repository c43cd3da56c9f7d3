// Package cli defines the wxr2mdx command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wxrtools/wxr2mdx/internal/config"
	"github.com/wxrtools/wxr2mdx/internal/logger"
	"github.com/wxrtools/wxr2mdx/internal/migrate"
)

var (
	flagLimit       string
	flagOverwrite   bool
	flagInsecure    bool
	flagConcurrency int
	flagLogLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "wxr2mdx <export-file> [output-dir]",
	Short: "Convert a WordPress WXR export into MDX documents",
	Long: `wxr2mdx reads a WordPress WXR export file and writes one MDX
document per published post, with post images downloaded next to each
document and the markup converted to markdown.`,
	Args:         cobra.RangeArgs(1, 2),
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagLimit, "limit", "n", "", "convert at most N posts, sampled across the alphabet")
	rootCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "clear a non-empty output directory before converting")
	rootCmd.Flags().BoolVar(&flagInsecure, "insecure", false, "skip TLS certificate verification on image downloads")
	rootCmd.Flags().IntVar(&flagConcurrency, "concurrency", config.DefaultConcurrency, "posts converted in parallel")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// ExecuteContext runs the root command under the given context. The
// context cancels in-flight image downloads on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts := config.New()
	opts.ExportPath = args[0]
	if len(args) > 1 {
		opts.OutputDir = args[1]
	}
	opts.Overwrite = flagOverwrite
	opts.Insecure = flagInsecure
	opts.Concurrency = flagConcurrency
	opts.LogLevel = flagLogLevel

	// A bad --limit downgrades to "convert everything" rather than
	// aborting the run.
	limitWarning := ""
	if flagLimit != "" {
		n, err := strconv.Atoi(flagLimit)
		if err != nil {
			limitWarning = flagLimit
		} else {
			opts.Limit = n
		}
	}

	if err := opts.Resolve(); err != nil {
		return err
	}

	if err := migrate.PrepareOutput(opts.OutputDir, opts.Overwrite); err != nil {
		return err
	}

	logFile, err := os.OpenFile(
		filepath.Join(opts.OutputDir, migrate.LogFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
	)
	if err != nil {
		return fmt.Errorf("open conversion log: %w", err)
	}
	defer logFile.Close()
	logger.WriteRunHeader(logFile, os.Args, opts.ExportPath, opts.OutputDir)

	log := logger.New(logger.Config{
		Mirror: logFile,
		Level:  logger.ParseLevel(opts.LogLevel),
	})
	if limitWarning != "" {
		log.Warn("ignoring non-numeric --limit", "value", limitWarning)
	}

	return migrate.New(opts, log).Run(cmd.Context())
}
