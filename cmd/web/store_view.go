package main

import (
	"strconv"

	"github.com/kenpro-automation/kenpro-web/internal/catalog"
	"github.com/kenpro-automation/kenpro-web/internal/format"
)

// StoreView is the product listing view model.
type StoreView struct {
	Products []StoreProduct
}

// StoreProduct is one card in the listing grid.
type StoreProduct struct {
	ID    int64
	Name  string
	Blurb string
	Image string
	Price string
	Href  string
}

// ProductView is the product detail view model.
type ProductView struct {
	ID     int64
	Name   string
	Blurb  string
	Detail string
	Image  string
	Price  string
}

func buildStoreView() StoreView {
	all := catalog.All()
	view := StoreView{Products: make([]StoreProduct, 0, len(all))}
	for _, p := range all {
		view.Products = append(view.Products, storeProduct(p))
	}
	return view
}

func storeProduct(p catalog.Product) StoreProduct {
	return StoreProduct{
		ID:    p.ID,
		Name:  p.Name,
		Blurb: p.Description,
		Image: p.ImageURL,
		Price: format.Currency(p.PriceCents, "USD"),
		Href:  productHref(p.ID),
	}
}

func buildProductView(p catalog.Product) ProductView {
	return ProductView{
		ID:     p.ID,
		Name:   p.Name,
		Blurb:  p.Description,
		Detail: p.DetailText(),
		Image:  p.ImageURL,
		Price:  format.Currency(p.PriceCents, "USD"),
	}
}

func productHref(id int64) string {
	return "/store/" + strconv.FormatInt(id, 10)
}
