package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenpro-automation/kenpro-web/internal/catalog"
)

func cookieByName(t *testing.T, res *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionCookieIssuedAndRoundTrips(t *testing.T) {
	var seen string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		seen = s.ID
		w.WriteHeader(http.StatusOK)
	}))

	// First visit: a new session cookie is set.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c := cookieByName(t, rec.Result(), sessionCookieName)
	require.NotNil(t, c, "first response must set the session cookie")
	require.NotEmpty(t, seen)
	firstID := seen

	// Second visit with the cookie: same session comes back.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, firstID, seen)
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	var ids []string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, GetSession(r).ID)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c := cookieByName(t, rec.Result(), sessionCookieName)
	require.NotNil(t, c)

	// Flip a byte in the payload; the signature no longer matches and a
	// fresh session must be issued.
	c.Value = "x" + c.Value[1:]
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestSessionCarriesCart(t *testing.T) {
	p := catalog.Product{ID: 7, Name: "Lumina Side Table", PriceCents: 49950}

	add := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		s.Cart.Add(p)
		s.MarkDirty()
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	add.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", nil))
	c := cookieByName(t, rec.Result(), sessionCookieName)
	require.NotNil(t, c)

	var count int
	read := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count = GetSession(r).Cart.Count()
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(c)
	read.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 1, count, "cart added in one request is visible in the next")
}

func TestCSRFBlocksPostWithoutToken(t *testing.T) {
	h := Session(CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFAllowsPostWithHeaderAndCookie(t *testing.T) {
	h := Session(CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	// Prime: a GET hands out session and csrf cookies.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	sess := cookieByName(t, rec.Result(), sessionCookieName)
	csrf := cookieByName(t, rec.Result(), csrfCookieName)
	require.NotNil(t, sess)
	require.NotNil(t, csrf)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	req.AddCookie(sess)
	req.AddCookie(csrf)
	req.Header.Set("X-CSRF-Token", csrf.Value)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWriteErrorShapePerClient(t *testing.T) {
	// htmx callers get JSON; plain browsers get a text error.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithHTMX(req.Context(), true))
	writeError(rec, req, http.StatusForbidden, "invalid CSRF token")
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"invalid CSRF token"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodPost, "/", nil), http.StatusForbidden, "invalid CSRF token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid CSRF token")
}
