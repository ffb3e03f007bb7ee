// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/dom/deadlock-hub/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData is what every page template receives.
type PageData struct {
	User    *domain.User
	Title   string
	Region  string
	Regions []RegionLink
	SteamID string
	Player  *PlayerCard
}

type RegionLink struct {
	Slug string
	Name string
}

// PlayerCard is the profile header of a player page.
type PlayerCard struct {
	Name       string
	AvatarURL  string
	ProfileURL string
	Country    string
}

type Renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{"home", "leaderboard", "player", "notfound"}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes the named page with status. Output is buffered so a template
// error still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data PageData) {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Printf("ERROR [web.Render] unknown page %q", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("ERROR [web.Render] page=%s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Static serves the embedded stylesheet and scripts.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}

// Regions lists the ladders in navigation order.
func Regions() []RegionLink {
	links := make([]RegionLink, 0, len(domain.AllRegions))
	for _, r := range domain.AllRegions {
		links = append(links, RegionLink{Slug: r.Slug(), Name: r.DisplayName()})
	}
	return links
}
