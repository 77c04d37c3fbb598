package main

import (
	"bytes"
	"compress/gzip"
	"embed"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/himanishpuri/SongSearch/pkg/logger"
)

//go:embed static/*
var staticFS embed.FS

// asset holds a minified and gzipped version of a static file.
type asset struct {
	content     []byte // minified content
	gzipped     []byte // gzipped minified content
	contentType string
}

// loadAssets minifies and gzips every embedded static file, keyed by serve path.
// The returned map is never written again.
func loadAssets(log *logger.Logger) map[string]*asset {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	assets := make(map[string]*asset)
	err := fs.WalkDir(staticFS, "static", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := staticFS.ReadFile(filePath)
		if err != nil {
			return err
		}

		contentType := mime.TypeByExtension(filepath.Ext(filePath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		servePath := strings.TrimPrefix(filePath, "static/")

		minified := data
		mediaType, _, _ := strings.Cut(contentType, ";")
		if _, _, fn := m.Match(mediaType); fn != nil {
			var buf bytes.Buffer
			if err := m.Minify(mediaType, &buf, bytes.NewReader(data)); err != nil {
				log.Warnf("Failed to minify %s: %v (using original)", servePath, err)
			} else if len(data) > 0 {
				minified = buf.Bytes()
				log.Debugf("Minified %s: %d -> %d bytes", servePath, len(data), len(minified))
			}
		}

		a := &asset{content: minified, contentType: contentType}
		var gzBuf bytes.Buffer
		if err := gzipTo(&gzBuf, minified); err != nil {
			log.Warnf("Failed to gzip %s: %v (serving uncompressed)", servePath, err)
		} else {
			a.gzipped = gzBuf.Bytes()
		}
		assets[servePath] = a
		return nil
	})
	if err != nil {
		log.Warnf("Failed to process embedded assets: %v", err)
	}

	log.Infof("Initialized %d embedded assets", len(assets))
	return assets
}

// gzipTo writes data to w compressed at best compression.
func gzipTo(w io.Writer, data []byte) error {
	gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// serve writes the asset, gzipped when the client accepts it and a
// compressed copy exists.
func (a *asset) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Vary", "Accept-Encoding")

	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") && len(a.gzipped) > 0 {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(a.gzipped)
		return
	}

	w.Write(a.content)
}

// staticHandler serves the search page. In dev mode files come straight from
// disk; otherwise embedded, minified and gzipped assets are served.
func (s *Server) staticHandler() http.Handler {
	if s.config.DevStatic {
		s.log.Infof("Development mode: serving static files from disk")
		return http.FileServer(http.Dir(filepath.Join("cmd", "server", "static")))
	}

	assets := loadAssets(s.log)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		urlPath := path.Clean(r.URL.Path)
		if urlPath == "/" || urlPath == "." {
			urlPath = "index.html"
		} else {
			urlPath = strings.TrimPrefix(urlPath, "/")
		}

		a, ok := assets[urlPath]
		if !ok {
			http.NotFound(w, r)
			return
		}
		a.serve(w, r)
	})
}
