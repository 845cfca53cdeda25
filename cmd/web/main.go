package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kenpro-automation/kenpro-web/internal/cms"
	mw "github.com/kenpro-automation/kenpro-web/internal/middleware"
	"github.com/kenpro-automation/kenpro-web/internal/planner"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	contentDir   = "content"
	// devMode is set in main() based on env: KENPRO_WEB_DEV (preferred) or DEV (fallback)
	devMode bool

	logger       *zap.Logger
	contentStore *cms.Store
	plannerGen   planner.Generator
)

func main() {
	var (
		addr        string
		tmplPath    string
		pubPath     string
		contentPath string
	)
	// Port resolution: prefer KENPRO_WEB_PORT, then Cloud Run's PORT, else 8080
	port := os.Getenv("KENPRO_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&contentPath, "content", contentDir, "markdown content directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	contentDir = contentPath

	// Dev mode: prefer KENPRO_WEB_DEV, fallback to DEV
	devMode = os.Getenv("KENPRO_WEB_DEV") != "" || os.Getenv("DEV") != ""

	var err error
	if devMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	contentTTL := 10 * time.Minute
	if devMode {
		contentTTL = 0
	}
	contentStore = cms.NewStore(contentDir, contentTTL)

	// The Gemini key is read here but only checked when a plan is
	// actually requested, so the rest of the site works without it.
	apiKey := os.Getenv("KENPRO_WEB_GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	plannerGen = planner.NewGemini(apiKey)

	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("web listening", zap.String("addr", addr), zap.Bool("devMode", devMode))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.CSRF)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(60 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(publicDir+"/assets")))

	r.NotFound(NotFoundHandler)

	// Pages
	r.Get("/", HomeHandler)
	r.Get("/services", ContentPageHandler)
	r.Get("/about", ContentPageHandler)
	r.Get("/contact", ContentPageHandler)

	// Store
	r.Get("/store", StoreHandler)
	r.Get("/store/{productID}", ProductHandler)

	// Cart
	r.Get("/cart", CartHandler)
	r.Get("/cart/badge", CartBadgeFrag)
	r.Post("/cart/items", CartAddHandler)
	r.Post("/cart/items/{productID}/quantity", CartQuantityHandler)
	r.Post("/cart/items/{productID}/remove", CartRemoveHandler)
	r.Post("/cart/clear", CartClearHandler)

	// AI project planner
	r.Get("/planner", PlannerHandler)
	r.Post("/planner/generate", PlannerGenerateHandler)

	// Project hub and site tools
	r.Get("/hub", HubHandler)
	r.Get("/hub/sites", SitesHandler)
	r.Post("/hub/sites/load", SitesLoadHandler)
	r.Post("/hub/sites/idea", SitesIdeaHandler)
	r.Post("/hub/sites/idea/page", SitesIdeaPageHandler)

	return r
}
