package songsearch

import (
	"net/http"
	"time"

	"github.com/himanishpuri/SongSearch/pkg/songsearch/source"
)

type Config struct {
	SourceURL    string
	Encoding     string
	FetchTimeout time.Duration
	HTTPClient   *http.Client
	Fetcher      source.Fetcher
	Logger       Logger
}

type Option func(*Config)

// WithSourceURL sets the CSV export URL fetched on every search.
func WithSourceURL(url string) Option {
	return func(c *Config) {
		c.SourceURL = url
	}
}

// WithEncoding sets the character encoding of the export, e.g. "euc-kr".
func WithEncoding(name string) Option {
	return func(c *Config) {
		c.Encoding = name
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.FetchTimeout = d
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithFetcher replaces the HTTP fetcher, e.g. with a source.FileFetcher.
func WithFetcher(f source.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func defaultConfig() *Config {
	return &Config{
		Encoding:     source.DefaultEncoding,
		FetchTimeout: source.DefaultTimeout,
	}
}
