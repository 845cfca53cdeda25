package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/kenpro-automation/kenpro-web/internal/planner"
)

const sitesMsgBadURL = "That link doesn't look like a published Google Sites page. It should start with https://sites.google.com/view/."

// HubHandler renders the project hub, a launcher for the planning tools.
func HubHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "Project Hub",
		"Planning tools for your furniture project: the AI planner, the site viewer, and the site idea generator.")
	vm.Hub = buildHubView()
	renderPage(w, r, "hub", vm)
}

// SitesHandler renders the site viewer and idea generator page.
func SitesHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "Site Viewer",
		"Preview a published Google Sites project page, or generate a site concept for your own.")
	vm.Sites = buildSitesView()
	renderPage(w, r, "sites", vm)
}

// SitesLoadHandler validates a Google Sites URL and returns the embed
// frame fragment, or an error fragment when the link is not acceptable.
func SitesLoadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	raw := strings.TrimSpace(r.FormValue("url"))
	if !validSitesURL(raw) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderTemplate(w, r, "frag_site_error", SiteError{Message: sitesMsgBadURL})
		return
	}
	renderTemplate(w, r, "frag_site_frame", SiteFrame{URL: raw})
}

// validSitesURL accepts only published Google Sites pages: https scheme,
// the sites.google.com host, and a /view/ path.
func validSitesURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "https" {
		return false
	}
	if u.Hostname() != "sites.google.com" {
		return false
	}
	return strings.HasPrefix(u.Path, "/view/")
}

// SitesIdeaHandler generates a site concept from a short description.
func SitesIdeaHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	idea := strings.TrimSpace(r.FormValue("idea"))
	if idea == "" {
		renderPlannerError(w, r, http.StatusUnprocessableEntity, plannerMsgEmptyIdea)
		return
	}
	concept, err := plannerGen.GenerateSiteIdea(r.Context(), idea)
	if err != nil {
		planError(w, r, err)
		return
	}
	renderTemplate(w, r, "frag_site_idea", SiteIdeaView{Idea: *concept})
}

// SitesIdeaPageHandler drafts copy for one page of a generated concept.
func SitesIdeaPageHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	concept := planner.SiteIdea{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Tagline: strings.TrimSpace(r.FormValue("tagline")),
	}
	page := strings.TrimSpace(r.FormValue("page"))
	if concept.Title == "" || page == "" {
		renderPlannerError(w, r, http.StatusUnprocessableEntity, plannerMsgEmptyIdea)
		return
	}
	text, err := plannerGen.GeneratePageContent(r.Context(), concept, page)
	if err != nil {
		planError(w, r, err)
		return
	}
	renderTemplate(w, r, "frag_site_page_content", SitePageContent{Page: page, Text: text})
}
