package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kenpro-automation/kenpro-web/internal/cms"
	"github.com/kenpro-automation/kenpro-web/internal/planner"
)

// fakeGenerator stands in for the Gemini client so handler tests never
// touch the network.
type fakeGenerator struct {
	plan     *planner.ProjectPlan
	text     string
	siteIdea *planner.SiteIdea
	pageText string
	err      error
	calls    int
}

func (f *fakeGenerator) GeneratePlan(ctx context.Context, idea string) (*planner.ProjectPlan, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

func (f *fakeGenerator) GeneratePlanText(ctx context.Context, idea string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) GenerateSiteIdea(ctx context.Context, idea string) (*planner.SiteIdea, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.siteIdea, nil
}

func (f *fakeGenerator) GeneratePageContent(ctx context.Context, idea planner.SiteIdea, page string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.pageText, nil
}

// newTestRouter builds a router like main(), with a fake plan generator.
func newTestRouter(t *testing.T, gen *fakeGenerator) http.Handler {
	t.Helper()
	// ensure templates reparse each request and set correct paths
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	contentDir = "../../content"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	logger = zap.NewNop()
	contentStore = cms.NewStore(contentDir, 0)
	if gen == nil {
		gen = &fakeGenerator{}
	}
	plannerGen = gen
	t.Cleanup(func() {
		contentStore = nil
		plannerGen = nil
	})
	return newRouter()
}

// primeSession performs a GET to collect session and CSRF cookies for
// subsequent POSTs.
func primeSession(t *testing.T, srv http.Handler) (csrf, session string) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "csrf_token":
			csrf = c.Value
		case "KENPRO_WEB_SESSION":
			session = c.Value
		}
	}
	if csrf == "" || session == "" {
		t.Fatalf("expected csrf and session cookies, got csrf=%q session=%q", csrf, session)
	}
	return csrf, session
}

func postForm(t *testing.T, srv http.Handler, path, form, csrf, session string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("X-CSRF-Token", csrf)
	req.Header.Set("Cookie", "csrf_token="+csrf+"; KENPRO_WEB_SESSION="+session)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func parseDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomePageRenders(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec.Body.String())
	if got := doc.Find(".site-header nav a").Length(); got != 6 {
		t.Fatalf("expected 6 nav links, got %d", got)
	}
	if badge := strings.TrimSpace(doc.Find("#cart-badge").Text()); badge != "0" {
		t.Fatalf("expected empty cart badge '0', got %q", badge)
	}
	if doc.Find(".featured .product-card").Length() == 0 {
		t.Fatalf("expected featured products on the landing page")
	}
}

func TestUnknownPathRenders404Page(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Fatalf("expected 404 page copy; body=%s", rec.Body.String())
	}
}

func TestStoreListsAllProducts(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec.Body.String())
	if got := doc.Find("[data-store-grid] .product-card").Length(); got != 6 {
		t.Fatalf("expected 6 product cards, got %d", got)
	}
	if !strings.Contains(rec.Body.String(), "$1,299.99") {
		t.Fatalf("expected formatted price in listing; body=%s", rec.Body.String())
	}
}

func TestProductDetailRenders(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Transformer Table") {
		t.Fatalf("expected product name in body")
	}
	if !strings.Contains(body, `"@type":"Product"`) {
		t.Fatalf("expected product JSON-LD in body")
	}
}

func TestProductNotFoundFallback(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, path := range []string{"/store/999", "/store/not-a-number"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Back to the store") {
			t.Fatalf("%s: expected store fallback link; body=%s", path, rec.Body.String())
		}
	}
}

func TestCartAddUpdatesBadgeAndTable(t *testing.T) {
	srv := newTestRouter(t, nil)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/cart/items", "product_id=1", csrf, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "cart:updated") || !strings.Contains(trigger, `"count":1`) {
		t.Fatalf("expected cart:updated trigger with count 1, got %q", trigger)
	}
	if !strings.Contains(rec.Body.String(), "Transformer Table") {
		t.Fatalf("expected added product in cart table fragment; body=%s", rec.Body.String())
	}

	// refreshed session cookie carries the cart into the badge request
	newSession := session
	for _, c := range rec.Result().Cookies() {
		if c.Name == "KENPRO_WEB_SESSION" {
			newSession = c.Value
		}
	}
	badgeReq := httptest.NewRequest(http.MethodGet, "/cart/badge", nil)
	badgeReq.Header.Set("Cookie", "KENPRO_WEB_SESSION="+newSession)
	badgeRec := httptest.NewRecorder()
	srv.ServeHTTP(badgeRec, badgeReq)
	if badgeRec.Code != http.StatusOK {
		t.Fatalf("badge: expected 200, got %d", badgeRec.Code)
	}
	doc := parseDoc(t, badgeRec.Body.String())
	if got := strings.TrimSpace(doc.Find("#cart-badge").Text()); got != "1" {
		t.Fatalf("expected badge count 1, got %q", got)
	}
}

func TestCartAddWithoutHTMXRedirects(t *testing.T) {
	srv := newTestRouter(t, nil)
	csrf, session := primeSession(t, srv)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader("product_id=2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", csrf)
	req.Header.Set("Cookie", "csrf_token="+csrf+"; KENPRO_WEB_SESSION="+session)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/cart" {
		t.Fatalf("expected redirect to /cart, got %q", loc)
	}
}

func TestCartQuantityZeroRemovesLine(t *testing.T) {
	srv := newTestRouter(t, nil)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/cart/items", "product_id=1", csrf, session)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "KENPRO_WEB_SESSION" {
			session = c.Value
		}
	}
	rec = postForm(t, srv, "/cart/items/1/quantity", "quantity=0", csrf, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Your cart is empty") {
		t.Fatalf("expected empty-cart copy after removing last line; body=%s", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), `"count":0`) {
		t.Fatalf("expected count 0 trigger, got %q", rec.Header().Get("HX-Trigger"))
	}
}

func TestCartMutationRequiresCSRF(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader("product_id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing CSRF, got %d; body=%s", rec.Code, rec.Body.String())
	}
}

func TestPlannerPageRenders(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planner", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="planner-form"`) {
		t.Fatalf("expected planner form in body")
	}
	if !strings.Contains(body, `id="planner-result"`) {
		t.Fatalf("expected result container in body")
	}
}

func TestPlannerEmptyIdeaRejectedBeforeGeneration(t *testing.T) {
	gen := &fakeGenerator{}
	srv := newTestRouter(t, gen)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/planner/generate", "idea=+++&mode=structured", csrf, session)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), plannerMsgEmptyIdea) {
		t.Fatalf("expected empty-idea message; body=%s", rec.Body.String())
	}
	if gen.calls != 0 {
		t.Fatalf("expected no generator calls for an empty idea, got %d", gen.calls)
	}
}

func TestPlannerStructuredPlanRenders(t *testing.T) {
	gen := &fakeGenerator{plan: &planner.ProjectPlan{
		ProjectName:             "The Loft Commander",
		SuggestedFeatures:       []string{"fold-away desk", "hidden cable tray"},
		MaterialRecommendations: []string{"white oak"},
		NextSteps:               "Book a consultation.",
	}}
	srv := newTestRouter(t, gen)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/planner/generate", "idea=a+desk+for+a+loft&mode=structured", csrf, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"The Loft Commander", "fold-away desk", "white oak", "Book a consultation."} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in plan fragment; body=%s", want, body)
		}
	}
	doc := parseDoc(t, body)
	if id, _ := doc.Find(".plan-card").Attr("data-plan-id"); id == "" {
		t.Fatalf("expected a plan id on the result card")
	}
}

func TestPlannerTextModeRendersProse(t *testing.T) {
	gen := &fakeGenerator{text: "Project Concept\nA wall bed with a desk.\n\nNext Steps\nCall us."}
	srv := newTestRouter(t, gen)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/planner/generate", "idea=wall+bed&mode=text", csrf, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "A wall bed with a desk.") {
		t.Fatalf("expected prose plan in fragment; body=%s", rec.Body.String())
	}
}

func TestPlannerMissingCredentialMessage(t *testing.T) {
	gen := &fakeGenerator{err: planner.ErrMissingCredential}
	srv := newTestRouter(t, gen)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/planner/generate", "idea=a+bed&mode=structured", csrf, session)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), plannerMsgConfig) {
		t.Fatalf("expected configuration message; body=%s", rec.Body.String())
	}
}

func TestPlannerMalformedResponseMessage(t *testing.T) {
	gen := &fakeGenerator{err: planner.ErrMalformedPlan}
	srv := newTestRouter(t, gen)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/planner/generate", "idea=a+bed&mode=structured", csrf, session)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), plannerMsgUnavailable) {
		t.Fatalf("expected generic failure message; body=%s", rec.Body.String())
	}
}

func TestContentPageMarkdownRendering(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Our Services") {
		t.Fatalf("expected page title in body")
	}
	if !strings.Contains(body, "content-prose") {
		t.Fatalf("expected prose wrapper in body")
	}
	if !strings.Contains(body, `aria-label="On this page"`) {
		t.Fatalf("expected table of contents to render")
	}
	if cache := rec.Header().Get("Cache-Control"); cache != "public, max-age=600" {
		t.Fatalf("expected Cache-Control=public, max-age=600, got %q", cache)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}

	req2 := httptest.NewRequest(http.MethodGet, "/services", nil)
	req2.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	srv.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusNotModified {
		t.Fatalf("expected 304 for matching ETag, got %d", rec2.Code)
	}
}

func TestHubPageListsTools(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hub", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec.Body.String())
	if got := doc.Find(".hub-card").Length(); got != 3 {
		t.Fatalf("expected 3 hub cards, got %d", got)
	}
}

func TestSitesLoadValidation(t *testing.T) {
	srv := newTestRouter(t, nil)
	csrf, session := primeSession(t, srv)

	bad := []string{
		"http://sites.google.com/view/x",
		"https://example.com/view/x",
		"https://sites.google.com/edit/x",
		"not a url at all",
	}
	for _, u := range bad {
		rec := postForm(t, srv, "/hub/sites/load", "url="+strings.ReplaceAll(u, " ", "+"), csrf, session)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%q: expected 422, got %d", u, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Google Sites") {
			t.Fatalf("%q: expected validation message; body=%s", u, rec.Body.String())
		}
	}

	rec := postForm(t, srv, "/hub/sites/load", "url=https://sites.google.com/view/kenpro-demo", csrf, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid URL, got %d", rec.Code)
	}
	doc := parseDoc(t, rec.Body.String())
	if src, _ := doc.Find("iframe").Attr("src"); src != "https://sites.google.com/view/kenpro-demo" {
		t.Fatalf("expected iframe with submitted URL, got %q", src)
	}
}

func TestSitesIdeaFragment(t *testing.T) {
	gen := &fakeGenerator{siteIdea: &planner.SiteIdea{
		Title:   "Kenpro Kitchens",
		Tagline: "Cook in half the space.",
		Pages:   []string{"Home", "Gallery", "Contact"},
	}}
	srv := newTestRouter(t, gen)
	csrf, session := primeSession(t, srv)

	rec := postForm(t, srv, "/hub/sites/idea", "idea=a+kitchen+portfolio", csrf, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Kenpro Kitchens") || !strings.Contains(body, "Cook in half the space.") {
		t.Fatalf("expected site concept in fragment; body=%s", body)
	}
	doc := parseDoc(t, body)
	if got := doc.Find(".site-pages li").Length(); got != 3 {
		t.Fatalf("expected 3 proposed pages, got %d", got)
	}
}

func TestSitesIdeaPageDraft(t *testing.T) {
	gen := &fakeGenerator{pageText: "Welcome to Kenpro Kitchens, where small rooms cook big."}
	srv := newTestRouter(t, gen)
	csrf, session := primeSession(t, srv)

	form := "title=Kenpro+Kitchens&tagline=Cook+in+half+the+space.&page=Home"
	rec := postForm(t, srv, "/hub/sites/idea/page", form, csrf, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "small rooms cook big") {
		t.Fatalf("expected drafted copy in fragment; body=%s", rec.Body.String())
	}
}

func TestAssetsServedWithCacheHeaders(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=604800") {
		t.Fatalf("expected long-lived Cache-Control, got %q", cc)
	}
	if rec.Header().Get("ETag") == "" {
		t.Fatalf("expected ETag on asset response")
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), ".cart-badge") {
		t.Fatalf("expected stylesheet body")
	}
}
