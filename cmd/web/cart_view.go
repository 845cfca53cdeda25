package main

import (
	"github.com/kenpro-automation/kenpro-web/internal/format"
	mw "github.com/kenpro-automation/kenpro-web/internal/middleware"
)

// CartView aggregates the data for the cart page and its table fragment.
type CartView struct {
	Items    []CartItem
	Empty    bool
	Count    int
	Subtotal string
}

// CartItem is one line in the cart table.
type CartItem struct {
	ID        int64
	Name      string
	Image     string
	Quantity  int
	UnitPrice string
	LineTotal string
	Href      string
}

// CartBadge is the header badge fragment model.
type CartBadge struct {
	Count int
}

func buildCartView(s *mw.SessionData) CartView {
	view := CartView{
		Empty:    s.Cart.Empty(),
		Count:    s.Cart.Count(),
		Subtotal: format.Currency(s.Cart.Subtotal(), "USD"),
	}
	for _, l := range s.Cart.Lines {
		view.Items = append(view.Items, CartItem{
			ID:        l.ProductID,
			Name:      l.Name,
			Image:     l.ImageURL,
			Quantity:  l.Quantity,
			UnitPrice: format.Currency(l.UnitPrice, "USD"),
			LineTotal: format.Currency(l.LineTotal(), "USD"),
			Href:      productHref(l.ProductID),
		})
	}
	return view
}

func badgeView(s *mw.SessionData) CartBadge {
	return CartBadge{Count: s.Cart.Count()}
}
