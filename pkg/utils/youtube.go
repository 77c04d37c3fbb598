package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WatchURL builds the YouTube watch link for a catalog video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?" + url.Values{"v": {videoID}}.Encode()
}

// ExtractYouTubeID returns the video id from a youtube.com or youtu.be link.
func ExtractYouTubeID(youtubeURL string) (string, error) {
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "youtu.be"):
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, nil
		}
	case strings.Contains(host, "youtube.com"):
		if strings.HasPrefix(u.Path, "/watch") {
			if id := u.Query().Get("v"); id != "" {
				return id, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/"} {
			if id, ok := strings.CutPrefix(u.Path, prefix); ok && id != "" {
				return strings.Trim(id, "/"), nil
			}
		}
	}

	return "", fmt.Errorf("unable to extract video ID from URL: %s", youtubeURL)
}

// VideoID accepts either a bare id or any YouTube link and returns the id.
func VideoID(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return s
	}
	if id, err := ExtractYouTubeID(s); err == nil {
		return id
	}
	return s
}
