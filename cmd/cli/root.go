package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/SongSearch/pkg/logger"
	"github.com/himanishpuri/SongSearch/pkg/songsearch"
	"github.com/himanishpuri/SongSearch/pkg/songsearch/source"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	sourceURL string
	file      string
	encoding  string
	timeout   time.Duration
	verbose   bool
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envDuration parses the duration in key, or returns def when key is unset.
func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}
	defaultTimeout, envErr := envDuration("FETCH_TIMEOUT", source.DefaultTimeout)

	rootCmd := &cobra.Command{
		Use:   "songsearch",
		Short: "Search a song catalog published as CSV",
		Long: `songsearch queries a song catalog (artist, title, YouTube video id)
published as a CSV export, the same way the HTTP server does.

Examples:
  songsearch search "iu"
  songsearch search "love" --page 2 --format text
  songsearch dump --file songs.csv --encoding cp949`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil && !cmd.Flags().Changed("timeout") {
				return envErr
			}
			if opts.verbose {
				logger.GetLogger().SetLevel(logger.DEBUG)
			}
			return nil
		},
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.sourceURL, "source", getEnvOrDefault("GOOGLE_SHEET_URL", ""), "URL of the catalog CSV export")
	flags.StringVarP(&opts.file, "file", "f", "", "Read the catalog from a local CSV file instead of --source")
	flags.StringVarP(&opts.encoding, "encoding", "e", getEnvOrDefault("SONG_CSV_ENCODING", source.DefaultEncoding), "Character encoding of the catalog (utf-8, euc-kr, cp949)")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Timeout for fetching the catalog")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSearchCmd(opts), newDumpCmd(opts))
	return rootCmd
}

// createService builds a service reading from --file when given, else --source.
func createService(opts *globalOptions) (songsearch.Service, error) {
	options := []songsearch.Option{
		songsearch.WithEncoding(opts.encoding),
		songsearch.WithFetchTimeout(opts.timeout),
		// Keep stdout clean for command output.
		songsearch.WithLogger(logger.New(logger.Config{
			Level:    logger.GetLogger().Level(),
			Colorize: logger.IsTerminal(os.Stderr),
			Output:   os.Stderr,
		})),
	}
	if opts.file != "" {
		options = append(options, songsearch.WithFetcher(&source.FileFetcher{Path: opts.file}))
	} else {
		options = append(options, songsearch.WithSourceURL(opts.sourceURL))
	}
	return songsearch.NewService(options...)
}
