package main

import (
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/kenpro-automation/kenpro-web/internal/cms"
	"github.com/kenpro-automation/kenpro-web/internal/format"
)

// ContentView carries a rendered markdown page into the layout.
type ContentView struct {
	HTML    string
	TOC     []cms.Heading
	Updated string
}

// ContentPageHandler serves the editorial pages (services, about,
// contact) from the markdown content directory. The route path doubles
// as the slug.
func ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/")
	page, err := contentStore.Page(slug)
	if err != nil {
		if os.IsNotExist(err) {
			NotFoundHandler(w, r)
			return
		}
		logger.Error("content page", zap.Error(err))
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600")
	w.Header().Set("ETag", page.ETag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == page.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if !page.Updated.IsZero() {
		w.Header().Set("Last-Modified", page.Updated.UTC().Format(http.TimeFormat))
	}

	vm := basePageData(r, page.Title, page.Description)
	view := ContentView{HTML: page.HTML, TOC: page.TOC}
	if !page.Updated.IsZero() {
		view.Updated = format.Date(page.Updated)
	}
	vm.Content = view
	renderPage(w, r, "content", vm)
}
