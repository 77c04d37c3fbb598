package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/SongSearch/pkg/songsearch/catalog"
	"github.com/himanishpuri/SongSearch/pkg/utils"
)

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		page   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search songs by artist or title",
		Long: `Search the catalog for songs whose artist or title contains the query,
ignoring case. Results are paginated, 20 per page.

Examples:
  songsearch search "beatles"
  songsearch search "love" --page 2 --format text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("a search query is required")
			}

			svc, err := createService(opts)
			if err != nil {
				return err
			}

			result, err := svc.Search(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), result)
			case "text":
				writePageText(cmd.OutOrStdout(), result)
				return nil
			default:
				return fmt.Errorf("unknown format %q (use json or text)", format)
			}
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, text)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writePageText(w io.Writer, page *catalog.Page) {
	if len(page.Results) == 0 {
		fmt.Fprintf(w, "No songs found (page %d of %d)\n", page.CurrentPage, page.TotalPages)
		return
	}

	start := (page.CurrentPage - 1) * catalog.PageSize
	for i, song := range page.Results {
		fmt.Fprintf(w, "%3d. %s - %s\n     %s\n", start+i+1, song.Artist, song.Title, utils.WatchURL(utils.VideoID(song.VideoID)))
	}
	fmt.Fprintf(w, "Page %d of %d\n", page.CurrentPage, page.TotalPages)
}
