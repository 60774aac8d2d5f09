package app

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ebikereviewlab/internal/content"
	"ebikereviewlab/internal/forms"
	"ebikereviewlab/internal/placement"
	"ebikereviewlab/internal/seo"
)

// Dependencies are the collaborators a Server renders from.
type Dependencies struct {
	Repository content.Repository
	Placements placement.Config
	Forms      *forms.Service
	Logger     *slog.Logger
}

// Server wires handlers, templates, and content sources together.
type Server struct {
	cfg        Config
	repo       content.Repository
	placements placement.Config
	forms      *forms.Service
	seo        *seo.Builder
	templates  *template.Template
	logger     *slog.Logger
	mux        *http.ServeMux
	handler    http.Handler
	now        func() time.Time
}

// NewServer constructs an HTTP handler ready to serve the site.
func NewServer(cfg Config, deps Dependencies) (*Server, error) {
	tmpl, err := template.New("base").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	submissions := deps.Forms
	if submissions == nil {
		submissions = forms.NewService(nil, cfg.FailurePolicy, logger)
	}

	site := seo.DefaultSite()
	if cfg.SiteURL != "" {
		site.URL = cfg.SiteURL
	}
	if cfg.ContactEmail != "" {
		site.ContactEmail = cfg.ContactEmail
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:        cfg,
		repo:       deps.Repository,
		placements: deps.Placements,
		forms:      submissions,
		seo:        seo.NewBuilder(site),
		templates:  tmpl,
		logger:     logger,
		mux:        http.NewServeMux(),
		now:        time.Now,
	}

	srv.mux.HandleFunc("/", srv.handleRoot)
	srv.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	srv.mux.HandleFunc("/sitemap.xml", srv.handleSitemap)
	srv.mux.HandleFunc("/robots.txt", srv.handleRobots)
	srv.mux.HandleFunc("/about", srv.staticHandler(aboutPage))
	srv.mux.HandleFunc("/privacy", srv.staticHandler(privacyPage))
	srv.mux.HandleFunc("/terms", srv.staticHandler(termsPage))
	srv.mux.HandleFunc("/contact", srv.handleContactPage)
	srv.mux.HandleFunc("/contact/submit", srv.handleContactSubmit)
	srv.mux.HandleFunc("/newsletter", srv.handleNewsletterPage)
	srv.mux.HandleFunc("/newsletter/subscribe", srv.handleNewsletterSubscribe)

	srv.handler = srv.withRequestLog(srv.mux)
	return srv, nil
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// handleRoot serves the home page and dispatches /{category} and
// /{category}/{slug}.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	if r.URL.Path == "/" {
		s.handleHome(w, r)
		return
	}

	raw := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(raw) > 2 {
		s.notFound(w, r)
		return
	}

	segments := make([]string, 0, len(raw))
	for _, part := range raw {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}
		slug, err := content.NormalizeSlug(decoded)
		if err != nil {
			s.notFound(w, r)
			return
		}
		segments = append(segments, slug)
	}

	canonical := seo.CanonicalPath(segments...)
	if canonical != strings.TrimSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	if len(segments) == 1 {
		s.handleCategory(w, r, segments[0])
		return
	}
	s.handleArticle(w, r, segments[0], segments[1])
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

// layoutData is what templates/layout.gohtml renders around a page body.
type layoutData struct {
	Meta       seo.Metadata
	Schema     template.JS
	Site       seo.Site
	Categories []content.CategorySummary
	Body       template.HTML
	Path       string
	Year       int
}

// render executes the named body template, decorates its links and wraps it
// in the layout. Nothing is written to w until both templates succeed.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any, meta seo.Metadata, schemas ...seo.Schema) {
	ctx := r.Context()
	log := s.requestLogger(ctx)

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		log.Error("render body", "template", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	decorated, err := decorateLinks(body.String(), s.publishedLookup(ctx))
	if err != nil {
		log.Warn("decorate links", "template", name, "error", err)
		decorated = body.String()
	}

	var schema template.JS
	if len(schemas) > 0 {
		encoded, err := seo.MarshalSchemas(schemas)
		if err != nil {
			log.Error("encode schema", "template", name, "error", err)
		} else {
			schema = template.JS(encoded)
		}
	}

	var categories []content.CategorySummary
	if s.repo != nil {
		categories, err = s.repo.Categories(ctx)
		if err != nil {
			log.Warn("list categories for navigation", "error", err)
		}
	}

	var page bytes.Buffer
	err = s.templates.ExecuteTemplate(&page, "layout.gohtml", layoutData{
		Meta:       meta,
		Schema:     schema,
		Site:       s.seo.Site(),
		Categories: categories,
		Body:       template.HTML(decorated),
		Path:       r.URL.Path,
		Year:       s.now().Year(),
	})
	if err != nil {
		log.Error("render layout", "template", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := page.WriteTo(w); err != nil {
		log.Debug("write response", "error", err)
	}
}

// publishedLookup reports whether an article key exists. The key set is
// loaded on first use; if it cannot be loaded every link is kept.
func (s *Server) publishedLookup(ctx context.Context) func(string) bool {
	var (
		loaded bool
		failed bool
		keys   map[string]struct{}
	)
	return func(key string) bool {
		if !loaded {
			loaded = true
			keys, failed = s.publishedKeys(ctx)
		}
		if failed {
			return true
		}
		_, ok := keys[key]
		return ok
	}
}

func (s *Server) publishedKeys(ctx context.Context) (map[string]struct{}, bool) {
	if s.repo == nil {
		return nil, false
	}
	all, err := s.repo.All(ctx)
	if err != nil {
		s.requestLogger(ctx).Warn("list articles for link check", "error", err)
		return nil, true
	}
	keys := make(map[string]struct{}, len(all))
	for i := range all {
		keys[all[i].Key()] = struct{}{}
	}
	return keys, false
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	meta := s.seo.NotFound(r.URL.Path)
	s.render(w, r, http.StatusNotFound, "notfound.gohtml", struct{ Path string }{r.URL.Path}, meta)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.requestLogger(r.Context()).Error(msg, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
