package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kenpro-automation/kenpro-web/internal/catalog"
	"github.com/kenpro-automation/kenpro-web/internal/seo"
)

// StoreHandler renders the product listing.
func StoreHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "Store",
		"Shop multifunctional furniture by Kenpro Automation: transforming tables, wall beds, smart desks, and modular storage.")
	vm.Store = buildStoreView()
	renderPage(w, r, "store", vm)
}

// ProductHandler renders a product detail page. An unknown or malformed
// id gets a store-flavored not-found page with a way back, not a bare 404.
func ProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		productNotFound(w, r)
		return
	}
	p, ok := catalog.ByID(id)
	if !ok {
		productNotFound(w, r)
		return
	}

	vm := basePageData(r, p.Name, p.Description)
	vm.Product = buildProductView(p)
	vm.SEO.OG.Type = "product"
	vm.SEO.OG.Image = p.ImageURL
	vm.SEO.Twitter.Image = p.ImageURL
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.Product(p.Name, p.Description, absoluteURL(r), p.ImageURL, p.PriceCents, "USD")),
		seo.JSON(seo.BreadcrumbList([]seo.BreadcrumbItem{
			{Name: "Home", Item: siteURL(r) + "/"},
			{Name: "Store", Item: siteURL(r) + "/store"},
			{Name: p.Name, Item: absoluteURL(r)},
		})),
	}
	renderPage(w, r, "product", vm)
}

func productNotFound(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "Product Not Found",
		"We couldn't find that product. Browse the rest of the store instead.")
	vm.SEO.Robots = "noindex"
	renderPageStatus(w, r, "product_not_found", vm, http.StatusNotFound)
}
