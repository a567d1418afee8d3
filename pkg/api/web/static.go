// Package web serves the bundled single-page front end.
package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"statement_insight/pkg/api/respond"
	"statement_insight/pkg/core/logger"
)

// SPA serves files from dir. Paths that do not name a file fall back to
// index.html so client-side routes resolve.
func SPA(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" && !strings.HasSuffix(clean, "/") {
			if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean))); err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}
		if _, err := os.Stat(index); err != nil {
			logger.Log.WithError(err).Error("Error serving index.html")
			respond.Error(w, http.StatusInternalServerError, "Failed to load index page")
			return
		}
		http.ServeFile(w, r, index)
	})
}
