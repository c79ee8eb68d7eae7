package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "rsvp", "login", "admin", "confirm"}

type views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("Jan 2, 2006 3:04 PM")
	},
}

func loadViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

type site struct {
	Bride    string
	Groom    string
	Date     string
	Location string
}

type pageData struct {
	Site  site
	Admin string
	Flash string
	Data  any
}

func (s *Server) site() site {
	date := s.cfg.WeddingDate
	if t := s.cfg.WeddingTime(); !t.IsZero() {
		date = t.Format("Monday, January 2, 2006")
	}
	return site{
		Bride:    s.cfg.BrideName,
		Groom:    s.cfg.GroomName,
		Date:     date,
		Location: s.cfg.WeddingLocation,
	}
}

// render executes a page into a buffer first so a template error never
// leaves a half written response
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, flash string, data any) {
	t, ok := s.views.pages[name]
	if !ok {
		hlog.FromRequest(r).Error().Str("page", name).Msg("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pd := pageData{Site: s.site(), Flash: flash, Data: data}
	if u := adminFrom(r.Context()); u.ID != "" {
		pd.Admin = u.Email
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", pd); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
