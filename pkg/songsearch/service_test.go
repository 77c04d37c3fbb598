package songsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golang.org/x/text/encoding/korean"

	"github.com/himanishpuri/SongSearch/pkg/songsearch/source"
)

// testLogger collects log lines so tests can assert on them.
type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *testLogger) Infof(format string, args ...any)  { l.add("INFO", format, args...) }
func (l *testLogger) Warnf(format string, args ...any)  { l.add("WARN", format, args...) }
func (l *testLogger) Errorf(format string, args ...any) { l.add("ERROR", format, args...) }
func (l *testLogger) Debugf(format string, args ...any) { l.add("DEBUG", format, args...) }

func (l *testLogger) contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

type staticFetcher struct {
	body []byte
	err  error
}

func (f staticFetcher) Fetch(context.Context) ([]byte, error) {
	return f.body, f.err
}

const sampleCSV = "artist,title,videoId\nA,SongOne,vid1\nB,SongTwo,vid2\nA,SongThree,vid3\nbroken row\n"

func newTestService(t *testing.T, f source.Fetcher, opts ...Option) (Service, *testLogger) {
	t.Helper()
	log := &testLogger{}
	opts = append([]Option{WithFetcher(f), WithLogger(log)}, opts...)
	svc, err := NewService(opts...)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, log
}

func TestSearch(t *testing.T) {
	svc, log := newTestService(t, staticFetcher{body: []byte(sampleCSV)})

	page, err := svc.Search(context.Background(), "a", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page.Results))
	}
	if page.Results[0].VideoID != "vid1" || page.Results[1].VideoID != "vid3" {
		t.Errorf("unexpected results: %v", page.Results)
	}
	if page.TotalPages != 1 || page.CurrentPage != 1 {
		t.Errorf("TotalPages=%d CurrentPage=%d, want 1 and 1", page.TotalPages, page.CurrentPage)
	}
	if !log.contains("Skipping catalog line 5") {
		t.Errorf("expected discarded row to be logged, got %v", log.lines)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc, _ := newTestService(t, staticFetcher{body: []byte(sampleCSV)})
	if _, err := svc.Search(context.Background(), "", 1); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchFetchError(t *testing.T) {
	upstream := &source.StatusError{StatusCode: http.StatusForbidden, URL: "https://example.com"}
	svc, log := newTestService(t, staticFetcher{err: upstream})

	_, err := svc.Search(context.Background(), "a", 1)
	var statusErr *source.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected wrapped StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", statusErr.StatusCode)
	}
	if !log.contains("Failed to fetch catalog") {
		t.Error("expected fetch failure to be logged")
	}
}

func TestSearchKoreanEncoding(t *testing.T) {
	raw, err := korean.EUCKR.NewEncoder().Bytes([]byte("가수,제목,영상\n아이유,좋은 날,jeJa2Cw8XAs\n볼빨간사춘기,우주를 줄게,6ZUIwj3FgUY"))
	if err != nil {
		t.Fatal(err)
	}
	svc, _ := newTestService(t, staticFetcher{body: raw}, WithEncoding("cp949"))

	page, err := svc.Search(context.Background(), "우주", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Artist != "볼빨간사춘기" {
		t.Errorf("unexpected results: %v", page.Results)
	}
}

func TestSongsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	svc, _ := newTestService(t, &source.FileFetcher{Path: path})

	songs, err := svc.Songs(context.Background())
	if err != nil {
		t.Fatalf("Songs failed: %v", err)
	}
	if len(songs) != 3 {
		t.Errorf("expected 3 songs, got %d", len(songs))
	}
}

func TestSearchOverHTTP(t *testing.T) {
	var hits int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	svc, err := NewService(
		WithSourceURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithLogger(&testLogger{}),
	)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Search(context.Background(), "song", 1); err != nil {
			t.Fatalf("Search failed: %v", err)
		}
	}

	// Nothing is cached between searches.
	if hits != 2 {
		t.Errorf("catalog fetched %d times, want 2", hits)
	}
}

func TestNewServiceErrors(t *testing.T) {
	if _, err := NewService(WithLogger(&testLogger{})); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
	if _, err := NewService(WithSourceURL("http://x"), WithEncoding("nope"), WithLogger(&testLogger{})); err == nil {
		t.Error("expected error for unknown encoding")
	}
}
