package handlers

import (
	"github.com/kenpro-automation/kenpro-web/internal/nav"
)

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	SEO       SEOData
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CartCount   int

	// Optional per-page view model payloads
	Home    any
	Store   any
	Product any
	Cart    any
	Planner any
	Hub     any
	Sites   any
	Content any
}

// SEOData is a lightweight copy to avoid importing the seo package here.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          struct {
		Title       string
		Description string
		Image       string
		Type        string
		URL         string
		SiteName    string
	}
	Twitter struct {
		Card  string
		Site  string
		Image string
	}
	JSONLD []string
}
