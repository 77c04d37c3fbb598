package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/himanishpuri/SongSearch/pkg/songsearch/catalog"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const cliCatalog = "artist,title,videoId\nA,SongOne,vid1\nB,SongTwo,vid2\nA,SongThree,https://youtu.be/vid3\n"

func TestSearchCommandJSON(t *testing.T) {
	path := writeCatalog(t, cliCatalog)

	out, err := runCLI(t, "search", "a", "--file", path)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	var page catalog.Page
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(page.Results) != 2 || page.TotalPages != 1 || page.CurrentPage != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestSearchCommandText(t *testing.T) {
	path := writeCatalog(t, cliCatalog)

	out, err := runCLI(t, "search", "songthree", "--file", path, "--format", "text")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "1. A - SongThree") {
		t.Errorf("missing result line: %q", out)
	}
	if !strings.Contains(out, "https://www.youtube.com/watch?v=vid3") {
		t.Errorf("missing watch url: %q", out)
	}
	if !strings.Contains(out, "Page 1 of 1") {
		t.Errorf("missing page footer: %q", out)
	}
}

func TestSearchCommandNoResults(t *testing.T) {
	path := writeCatalog(t, cliCatalog)

	out, err := runCLI(t, "search", "zzz", "--file", path, "--format", "text")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "No songs found") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSearchCommandErrors(t *testing.T) {
	path := writeCatalog(t, cliCatalog)

	if _, err := runCLI(t, "search"); err == nil {
		t.Error("expected error without a query")
	}
	if _, err := runCLI(t, "search", "a", "--file", path, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := runCLI(t, "search", "a", "--file", path+".missing"); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeCatalog(t, cliCatalog+"only,two\n")

	out, err := runCLI(t, "dump", "--file", path)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}

	var dump dumpOutput
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if dump.Count != 3 || len(dump.Songs) != 3 {
		t.Errorf("count = %d, songs = %d, want 3", dump.Count, len(dump.Songs))
	}
}

func TestTimeoutDefaultsFromEnv(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "3s")

	flag := newRootCmd(&bytes.Buffer{}).PersistentFlags().Lookup("timeout")
	if flag == nil {
		t.Fatal("timeout flag not registered")
	}
	if flag.DefValue != "3s" {
		t.Errorf("timeout default = %s, want 3s", flag.DefValue)
	}
}

func TestInvalidTimeoutEnv(t *testing.T) {
	path := writeCatalog(t, cliCatalog)
	t.Setenv("FETCH_TIMEOUT", "soon")

	if _, err := runCLI(t, "search", "a", "--file", path); err == nil || !strings.Contains(err.Error(), "FETCH_TIMEOUT") {
		t.Errorf("expected FETCH_TIMEOUT error, got %v", err)
	}
	if _, err := runCLI(t, "search", "a", "--file", path, "--timeout", "2s"); err != nil {
		t.Errorf("explicit --timeout should override bad env: %v", err)
	}
}
