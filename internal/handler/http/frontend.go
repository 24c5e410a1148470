package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/handler/http/middleware"
)

// guestPages are only shown to visitors without a session.
var guestPages = map[string]bool{
	"/login":    true,
	"/register": true,
}

type frontendHandler struct {
	dir         string
	authService auth.AuthService
}

// NewFrontendHandler serves the static frontend build in dir. Pages need a
// session except the guest pages, which send signed-in users home. Assets
// (any path with a non-html extension) are served as is.
func NewFrontendHandler(dir string, authService auth.AuthService) http.Handler {
	return &frontendHandler{dir: dir, authService: authService}
}

func (h *frontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean("/" + r.URL.Path)

	if ext := path.Ext(urlPath); ext != "" && ext != ".html" {
		h.serveFile(w, r, urlPath)
		return
	}

	page := strings.TrimSuffix(urlPath, ".html")
	signedIn := middleware.HasSession(r, h.authService)
	switch {
	case guestPages[page] && signedIn:
		http.Redirect(w, r, "/", http.StatusFound)
		return
	case !guestPages[page] && !signedIn:
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	for _, candidate := range []string{page + ".html", path.Join(page, "index.html"), "/index.html"} {
		if h.exists(candidate) {
			http.ServeFile(w, r, h.localPath(candidate))
			return
		}
	}
	http.NotFound(w, r)
}

func (h *frontendHandler) serveFile(w http.ResponseWriter, r *http.Request, urlPath string) {
	if !h.exists(urlPath) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.localPath(urlPath))
}

func (h *frontendHandler) localPath(urlPath string) string {
	return filepath.Join(h.dir, filepath.FromSlash(urlPath))
}

func (h *frontendHandler) exists(urlPath string) bool {
	info, err := os.Stat(h.localPath(urlPath))
	return err == nil && !info.IsDir()
}
