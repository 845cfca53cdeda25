package main

import (
	"net/http"

	"github.com/kenpro-automation/kenpro-web/internal/seo"
)

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "Multifunctional Furniture, Built Around You",
		"Kenpro Automation designs and builds multifunctional furniture: space-saving beds, transforming tables, and custom smart storage.")
	vm.Home = buildHomeView()
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.Organization(siteName, siteURL(r), "")),
		seo.JSON(seo.WebSite(siteName, siteURL(r))),
	}
	renderPage(w, r, "home", vm)
}

// NotFoundHandler renders the shared 404 page.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "Page Not Found", "The page you were looking for does not exist.")
	vm.SEO.Robots = "noindex"
	renderPageStatus(w, r, "not_found", vm, http.StatusNotFound)
}
