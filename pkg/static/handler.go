package static

import (
	"net/http"
	"path"
	"strings"

	"github.com/samber/lo"
)

var allowedMethods = []string{http.MethodGet, http.MethodHead}

// NewHandler serves the directory tree under root. GET and HEAD go to
// http.FileServer, which handles index.html, directory listings, the trailing
// slash redirect, 404s and content types. A directory holding index.htm but no
// index.html serves index.htm. Every other method gets a 501.
func NewHandler(root string) http.Handler {
	dir := http.Dir(root)
	files := http.FileServer(dir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !lo.Contains(allowedMethods, r.Method) {
			w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
			http.Error(w, "Unsupported method ("+r.Method+")", http.StatusNotImplemented)
			return
		}

		if strings.HasSuffix(r.URL.Path, "/") && serveIndexHTM(w, r, dir) {
			return
		}

		files.ServeHTTP(w, r)
	})
}

func serveIndexHTM(w http.ResponseWriter, r *http.Request, dir http.Dir) bool {
	if f, err := dir.Open(path.Join(r.URL.Path, "index.html")); err == nil {
		f.Close()
		return false
	}

	f, err := dir.Open(path.Join(r.URL.Path, "index.htm"))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
