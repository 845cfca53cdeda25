package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kenpro-automation/kenpro-web/internal/catalog"
	mw "github.com/kenpro-automation/kenpro-web/internal/middleware"
)

// CartHandler renders the cart page.
func CartHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "Your Cart",
		"Review your selected pieces and quantities before requesting a quote.")
	vm.SEO.Robots = "noindex"
	vm.Cart = buildCartView(mw.GetSession(r))
	renderPage(w, r, "cart", vm)
}

// CartBadgeFrag renders the header cart badge fragment.
func CartBadgeFrag(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "frag_cart_badge", badgeView(mw.GetSession(r)))
}

// CartAddHandler adds one unit of a product to the session cart.
func CartAddHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	p, ok := catalog.ByID(id)
	if !ok {
		http.Error(w, "unknown product", http.StatusNotFound)
		return
	}

	s := mw.GetSession(r)
	s.Cart.Add(p)
	s.MarkDirty()
	respondCartMutation(w, r, s)
}

// CartQuantityHandler sets the quantity for a line. Zero removes it.
func CartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}

	s := mw.GetSession(r)
	s.Cart.SetQuantity(id, qty)
	s.MarkDirty()
	respondCartMutation(w, r, s)
}

// CartRemoveHandler removes a line from the cart.
func CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	s := mw.GetSession(r)
	s.Cart.Remove(id)
	s.MarkDirty()
	respondCartMutation(w, r, s)
}

// CartClearHandler empties the cart.
func CartClearHandler(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	s.Cart.Clear()
	s.MarkDirty()
	respondCartMutation(w, r, s)
}

// respondCartMutation answers a cart-changing POST. htmx callers get the
// refreshed cart table plus a cart:updated event for the badge; plain
// form posts bounce back to the cart page.
func respondCartMutation(w http.ResponseWriter, r *http.Request, s *mw.SessionData) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	payload := map[string]any{
		"cart:updated": map[string]int{"count": s.Cart.Count()},
	}
	if raw, err := json.Marshal(payload); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
	renderTemplate(w, r, "frag_cart_table", buildCartView(s))
}
