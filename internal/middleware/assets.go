package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// AssetsWithCache serves static files from dir with week-long Cache-Control
// and content-hash weak ETags, answering If-None-Match with 304. Mount it
// behind http.StripPrefix; lookups are relative to dir.
func AssetsWithCache(dir string) http.Handler {
	s := &assetServer{
		files: http.FileServer(http.Dir(dir)),
		etags: map[string]string{},
	}
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		if et, err := hashETag(path); err == nil {
			s.etags["/"+filepath.ToSlash(rel)] = et
		}
		return nil
	})
	return s
}

type assetServer struct {
	files http.Handler
	etags map[string]string
}

func (s *assetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Vary", "Accept-Encoding")
	w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")
	if et := s.etags[r.URL.Path]; et != "" {
		w.Header().Set("ETag", et)
		if r.Header.Get("If-None-Match") == et {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	s.files.ServeHTTP(w, r)
}

func hashETag(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)) + `"`, nil
}
