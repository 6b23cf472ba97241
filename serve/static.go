package serve

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// serveStatic resolves the request path against baseDir and streams the
// file back. The route root itself, excluded extensions and any resolved
// path escaping baseDir all answer 404; a request not under routePrefix is
// a 400.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request, routePrefix, baseDir string) {
	upath := r.URL.Path
	if hasExcludedExtension(upath) {
		http.NotFound(w, r)
		return
	}
	if !strings.HasPrefix(upath, routePrefix) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	rest := strings.TrimPrefix(upath, routePrefix)
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		// The route root is not a resource.
		http.NotFound(w, r)
		return
	}

	target := filepath.Join(baseDir, filepath.FromSlash(rest))
	if !insideDir(baseDir, target) {
		log.Debug().Str("uri", upath).Msg("Discarding request escaping the base directory")
		http.NotFound(w, r)
		return
	}
	log.Debug().Str("path", target).Msg("Serving static resource")

	info, err := os.Stat(target)
	if err != nil {
		staticError(w, r, err)
		return
	}
	file, err := os.Open(target)
	if err != nil {
		staticError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentType(target))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	io.Copy(w, file)
}

// staticError maps a failed stat or open to a response: a missing file is
// a 404, anything else is a 500.
func staticError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// insideDir reports whether target stays within base once cleaned.
func insideDir(base, target string) bool {
	rel, err := filepath.Rel(base, filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// contentType guesses a MIME type from the final path extension,
// defaulting to a generic binary type when unknown.
func contentType(p string) string {
	if t := mime.TypeByExtension(filepath.Ext(p)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// hasExcludedExtension reports whether the request path ends in an
// extension that must never be served.
func hasExcludedExtension(upath string) bool {
	ext := path.Ext(upath)
	for _, excluded := range excludedExtensions {
		if ext == excluded {
			return true
		}
	}
	return false
}
