// Package serve renders the blog over HTTP on demand. Every request
// re-reads the content tree from disk, so published changes show up
// without a restart. The template set and the directory paths are the only
// state shared between requests and both are read-only after New.
package serve

import (
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"wblog/content"
	"wblog/templates"
)

const (
	assetsRoute     = "/assets"
	postsRoute      = "/posts"
	postAssetsRoute = "/posts/post_assets"

	// rootPage is the link back to the front page from served pages.
	rootPage = "/"
)

// excludedExtensions never leave the server through a static handler.
var excludedExtensions = []string{".md"}

// Server serves a blog from its template and content directories.
type Server struct {
	templates         *templates.Set
	contentDir        string
	templateAssetsDir string
}

// New loads the template set and prepares a server rooted at the given
// directories.
func New(templatesDir, contentDir string) (*Server, error) {
	set, err := templates.Load(templatesDir)
	if err != nil {
		return nil, err
	}
	return &Server{
		templates:         set,
		contentDir:        contentDir,
		templateAssetsDir: filepath.Join(templatesDir, "assets"),
	}, nil
}

// Handler builds the route table of the server.
func (s *Server) Handler() http.Handler {
	rt := &router{}
	rt.add(http.MethodGet, "/", s.handleMain)
	rt.add(http.MethodGet, assetsRoute, func(w http.ResponseWriter, r *http.Request) {
		s.serveStatic(w, r, assetsRoute, s.templateAssetsDir)
	})
	rt.add(http.MethodGet, postsRoute, logRequests(s.handlePost))
	rt.add(http.MethodGet, postAssetsRoute, func(w http.ResponseWriter, r *http.Request) {
		s.serveStatic(w, r, postAssetsRoute, filepath.Join(s.contentDir, content.PostsDir))
	})
	return rt
}

// Run serves the blog on address until the listener fails. Read and write
// timeouts bound slow clients; there is no other cancellation.
func (s *Server) Run(address string) error {
	server := &http.Server{
		Addr:         address,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	log.Info().Str("address", address).Msg("Listening")
	return server.ListenAndServe()
}

// handleMain regenerates the front page from disk on every request. Any
// path other than the root itself is unknown.
func (s *Server) handleMain(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := s.mainPage()
	if err != nil {
		log.Error().Err(err).Msg("Generating main page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, page)
}

func (s *Server) mainPage() (string, error) {
	blog, err := content.ReadHome(s.contentDir)
	if err != nil {
		return "", err
	}
	metadata, err := content.ReadPostsMetadata(filepath.Join(s.contentDir, content.PostsDir))
	if err != nil {
		return "", err
	}
	models := make([]templates.PostModel, 0, len(metadata))
	for _, meta := range metadata {
		models = append(models, templates.NewListingModel(meta, postsRoute, rootPage))
	}
	return s.templates.RenderMain(templates.NewMainModel(*blog, models))
}

// handlePost re-loads and renders a single post per request. Markdown
// sources themselves are never served.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	upath := r.URL.Path
	if hasExcludedExtension(upath) {
		log.Debug().Str("uri", upath).Msg("Discarding request to a markdown source")
		http.NotFound(w, r)
		return
	}
	if !strings.HasPrefix(upath, postsRoute) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	name := path.Base(strings.TrimPrefix(upath, postsRoute))
	page, err := s.postPage(name)
	if err != nil {
		log.Error().Err(err).Str("post", name).Msg("Generating post page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, page)
}

func (s *Server) postPage(name string) (string, error) {
	postPath := filepath.Join(s.contentDir, content.PostsDir, name+".md")
	post, err := content.ReadPostFile(postPath)
	if err != nil {
		return "", err
	}
	model := templates.NewPostModel(*post, rootPage)
	model.FileName = name
	return s.templates.RenderPost(model)
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Length", strconv.Itoa(len(page)))
	io.WriteString(w, page)
}
