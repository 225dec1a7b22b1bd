package httptransport

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
)

var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

const errorPage = `<!DOCTYPE html>
<html>
<head>
  <title>%[1]s</title>
  <style>
    body { font-family: Arial, sans-serif; text-align: center; padding: 50px; background: #0f172a; color: #e2e8f0; }
    h1 { color: %[2]s; }
    a { color: #6366f1; text-decoration: none; }
    a:hover { text-decoration: underline; }
  </style>
</head>
<body>
  <h1>%[1]s</h1>
  <p>%[3]s</p>
  <p><a href="/">Return to TournamentFlow</a></p>
</body>
</html>
`

func contentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// StaticHandler serves files under root with a fixed content-type table and
// no-cache headers. Paths that escape root are reported as missing.
func StaticHandler(root string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if name == "/" {
			name = "/index.html"
		}
		clean := path.Clean("/" + name)
		if clean != name && clean+"/" != name {
			writeNotFound(w)
			return
		}
		full := filepath.Join(root, filepath.FromSlash(clean))

		info, err := os.Stat(full)
		if (err != nil && isMissing(err)) || (err == nil && info.IsDir()) {
			writeNotFound(w)
			return
		}
		var data []byte
		if err == nil {
			data, err = os.ReadFile(full)
		}
		if err != nil {
			log.Error().Err(err).Str("path", clean).Msg("read static file failed")
			writeStaticError(w, http.StatusInternalServerError, "500 - Server Error", "#ef4444", "An error occurred while serving the file.")
			return
		}
		w.Header().Set("Content-Type", contentType(full))
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = w.Write(data)
		}
	}
}

func writeNotFound(w http.ResponseWriter) {
	metricStaticNotFound.Add(1)
	writeStaticError(w, http.StatusNotFound, "404 - Page Not Found", "#6366f1", "The requested page could not be found.")
}

func writeStaticError(w http.ResponseWriter, status int, title, color, message string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, errorPage, title, color, message)
}

// isMissing reports errors that mean the file is absent rather than unreadable.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
