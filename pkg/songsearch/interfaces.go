package songsearch

import (
	"context"

	"github.com/himanishpuri/SongSearch/pkg/songsearch/catalog"
)

// Service answers search queries against the song catalog. The catalog is
// fetched fresh on every call.
type Service interface {
	Search(ctx context.Context, query string, page int) (*catalog.Page, error)
	Songs(ctx context.Context) ([]catalog.Song, error)
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
