package main

import (
	"github.com/spf13/cobra"

	"github.com/himanishpuri/SongSearch/pkg/songsearch/catalog"
)

type dumpOutput struct {
	Count int            `json:"count"`
	Songs []catalog.Song `json:"songs"`
}

func newDumpCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every song parsed from the catalog",
		Long: `Fetch and parse the whole catalog and print it as JSON. Rows that are
skipped by the parser are reported with --verbose.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := createService(opts)
			if err != nil {
				return err
			}

			songs, err := svc.Songs(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dumpOutput{Count: len(songs), Songs: songs})
		},
	}
}
