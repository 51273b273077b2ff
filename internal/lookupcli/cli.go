// Package lookupcli implements the command-line rank lookup.
package lookupcli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/okian/wcarank/internal/config"
	"github.com/okian/wcarank/pkg/logger"
)

// DefaultTimeout bounds each export download.
const DefaultTimeout = 60 * time.Second

// SetupLogging sends log output to w, at debug level when verbose.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.InitWithWriter(w, logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger.SetLevel(level)
	return nil
}

// NewCommand builds the lookup command. Results go to the command's output
// writer, logs to its error writer.
func NewCommand() *cobra.Command {
	cfg := &Config{}
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find the competitor holding a country rank in a WCA event",
		Long: `Find the competitor holding a country rank in a WCA event.

The results and ranks exports are downloaded (or read from disk), joined and
queried locally. With --url the lookup is sent to a running wcarank server
instead.`,
		Example: `  lookup --results results.tsv.gz --ranks ranks.tsv.gz --event 333 --region USA --rank 1
  lookup --url http://localhost:9080 --event 333fm --region Germany --rank lowest
  lookup --url http://localhost:9080 --events`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := SetupLogging(cmd.ErrOrStderr(), cfg.Verbose); err != nil {
				return err
			}
			return Run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	bindFlags(cmd.Flags(), cfg)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ResultsSource, "results", config.DefaultResultsSource,
		"results export, a path or http(s) URL")
	fs.StringVar(&cfg.RanksSource, "ranks", config.DefaultRanksSource,
		"ranks export, a path or http(s) URL")
	fs.StringVar(&cfg.ServerURL, "url", "",
		"ask a running wcarank server instead of loading the exports")
	fs.StringVarP(&cfg.Event, "event", "e", "", "event id, e.g. 333, 333fm, 333mbf")
	fs.StringVarP(&cfg.Region, "region", "r", "", "country id as used by the export, e.g. USA")
	fs.StringVarP(&cfg.Rank, "rank", "n", "", `rank number, or "lowest" for the worst ranked person`)
	fs.BoolVar(&cfg.ListEvents, "events", false, "list the events present in the data and exit")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "download timeout")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging on stderr")
}
