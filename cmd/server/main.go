package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/himanishpuri/SongSearch/pkg/logger"
	"github.com/himanishpuri/SongSearch/pkg/songsearch"
	"github.com/himanishpuri/SongSearch/pkg/songsearch/source"
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig parses flags whose defaults come from the environment.
func loadConfig(args []string) (*ServerConfig, error) {
	fset := flag.NewFlagSet("songsearch-server", flag.ContinueOnError)

	defaultPort := 8080
	if p := os.Getenv("PORT"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", p, err)
		}
		defaultPort = n
	}

	port := fset.Int("port", defaultPort, "HTTP server port")
	sourceURL := fset.String("source", getEnvOrDefault("GOOGLE_SHEET_URL", ""), "URL of the song catalog CSV export")
	encoding := fset.String("encoding", getEnvOrDefault("SONG_CSV_ENCODING", source.DefaultEncoding), "Character encoding of the CSV export (utf-8, euc-kr, cp949)")
	timeout := fset.String("timeout", getEnvOrDefault("FETCH_TIMEOUT", source.DefaultTimeout.String()), "Timeout for fetching the catalog")
	origins := fset.String("origins", getEnvOrDefault("ALLOWED_ORIGINS", "*"), "Comma-separated list of allowed CORS origins (use * for all)")
	dev := fset.Bool("dev", os.Getenv("DEV") == "1", "Serve static files from disk without minification")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if *sourceURL == "" {
		return nil, errors.New("catalog source is required (set GOOGLE_SHEET_URL or -source)")
	}
	fetchTimeout, err := time.ParseDuration(*timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid fetch timeout %q: %w", *timeout, err)
	}

	return &ServerConfig{
		Port:           *port,
		SourceURL:      *sourceURL,
		Encoding:       *encoding,
		FetchTimeout:   fetchTimeout,
		AllowedOrigins: parseOrigins(*origins),
		DevStatic:      *dev,
	}, nil
}

func parseOrigins(s string) []string {
	if strings.TrimSpace(s) == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func main() {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Could not load .env file: %v", err)
	}

	config, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	service, err := songsearch.NewService(
		songsearch.WithSourceURL(config.SourceURL),
		songsearch.WithEncoding(config.Encoding),
		songsearch.WithFetchTimeout(config.FetchTimeout),
		songsearch.WithLogger(log.With("[songsearch]")),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	server := NewServer(service, config)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
