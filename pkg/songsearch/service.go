package songsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding"

	"github.com/himanishpuri/SongSearch/pkg/logger"
	"github.com/himanishpuri/SongSearch/pkg/songsearch/catalog"
	"github.com/himanishpuri/SongSearch/pkg/songsearch/source"
)

var (
	ErrNoSource   = errors.New("songsearch: no catalog source configured")
	ErrEmptyQuery = errors.New("songsearch: query is empty")
)

// searchService is the default implementation of the Service interface.
type searchService struct {
	fetcher  source.Fetcher
	encoding encoding.Encoding
	log      Logger
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	enc, err := source.LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("songsearch: %w", err)
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		if cfg.SourceURL == "" {
			return nil, ErrNoSource
		}
		fetcher = &source.HTTPFetcher{
			URL:     cfg.SourceURL,
			Timeout: cfg.FetchTimeout,
			Client:  cfg.HTTPClient,
		}
	}

	return &searchService{
		fetcher:  fetcher,
		encoding: enc,
		log:      cfg.Logger,
	}, nil
}

// Search fetches the catalog and returns the requested page of matches.
func (s *searchService) Search(ctx context.Context, query string, page int) (*catalog.Page, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	songs, err := s.Songs(ctx)
	if err != nil {
		return nil, err
	}

	result := catalog.Search(songs, query, page)
	s.log.Infof("Search %q page %d: %d results, %d pages", query, page, len(result.Results), result.TotalPages)
	return &result, nil
}

// Songs fetches, decodes and parses the whole catalog.
func (s *searchService) Songs(ctx context.Context) ([]catalog.Song, error) {
	start := time.Now()
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.log.Errorf("Failed to fetch catalog: %v", err)
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	text, err := source.Decode(raw, s.encoding)
	if err != nil {
		s.log.Errorf("Failed to decode catalog: %v", err)
		return nil, err
	}

	obs := &discardLogger{log: s.log}
	parser := catalog.Parser{Observer: obs}
	songs := parser.Parse(text)

	s.log.Debugf("Fetched %s catalog in %s: %d songs, %d rows skipped",
		humanize.Bytes(uint64(len(raw))), time.Since(start).Round(time.Millisecond), len(songs), obs.count)
	return songs, nil
}

// discardLogger reports rows the parser dropped.
type discardLogger struct {
	log   Logger
	count int
}

func (d *discardLogger) RowDiscarded(line int, reason error) {
	d.count++
	d.log.Debugf("Skipping catalog line %d: %v", line, reason)
}
