package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kenpro-automation/kenpro-web/internal/format"
	"github.com/kenpro-automation/kenpro-web/internal/handlers"
	mw "github.com/kenpro-automation/kenpro-web/internal/middleware"
	"github.com/kenpro-automation/kenpro-web/internal/nav"
)

var tmplCache *template.Template

const siteName = "Kenpro Automation"

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":   time.Now,
		"money": func(minor int64) string { return format.Currency(minor, "USD") },
		"safe":  func(s string) template.HTML { return template.HTML(s) },
		// JSON-LD blocks live in a script element, which is a JS context
		// for the escaper.
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func currentTemplates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// renderPage executes the named page template inside the base layout.
func renderPage(w http.ResponseWriter, r *http.Request, page string, data handlers.PageData) {
	renderPageStatus(w, r, page, data, http.StatusOK)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, page string, data handlers.PageData, status int) {
	t := currentTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "page_"+page, data); err != nil {
		logger.Error("template exec", zap.Error(err))
	}
}

// renderTemplate executes a standalone fragment template (htmx partials).
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := currentTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("template exec", zap.Error(err))
	}
}

// basePageData fills the layout fields every page shares.
func basePageData(r *http.Request, title, description string) handlers.PageData {
	vm := handlers.PageData{
		Title:       title,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		Analytics:   handlers.LoadAnalyticsFromEnv(),
		CartCount:   mw.GetSession(r).Cart.Count(),
	}
	vm.SEO.Title = title + " | " + siteName
	vm.SEO.Description = description
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = siteName
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = description
	vm.SEO.OG.Type = "website"
	vm.SEO.Twitter.Card = "summary_large_image"
	return vm
}

// siteURL is the absolute site root for the current request.
func siteURL(r *http.Request) string {
	full := absoluteURL(r)
	return strings.TrimSuffix(full, r.URL.Path)
}

// absoluteURL reconstructs the canonical URL for the current request.
// KENPRO_WEB_BASE_URL wins when set so canonicals stay stable behind proxies.
func absoluteURL(r *http.Request) string {
	if base := strings.TrimSuffix(os.Getenv("KENPRO_WEB_BASE_URL"), "/"); base != "" {
		return base + r.URL.Path
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}
