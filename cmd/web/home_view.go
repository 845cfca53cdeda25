package main

import (
	"github.com/kenpro-automation/kenpro-web/internal/catalog"
)

// HomeView aggregates the landing page sections.
type HomeView struct {
	Hero     HomeHero
	Pillars  []HomePillar
	Featured []catalog.Product
}

// HomeHero is the above-the-fold banner.
type HomeHero struct {
	Headline   string
	Subline    string
	CTALabel   string
	CTAHref    string
	Secondary  string
	SecondHref string
}

// HomePillar is one of the service highlights on the landing page.
type HomePillar struct {
	Title string
	Body  string
	Href  string
	Icon  string
}

func buildHomeView() HomeView {
	return HomeView{
		Hero: HomeHero{
			Headline:   "Furniture that works as hard as your space",
			Subline:    "Beds that become walls, tables that double in size, storage that thinks ahead. Designed, built, and installed by Kenpro Automation.",
			CTALabel:   "Browse the store",
			CTAHref:    "/store",
			Secondary:  "Plan a custom project",
			SecondHref: "/planner",
		},
		Pillars: []HomePillar{
			{
				Title: "Multifunctional by design",
				Body:  "Every piece earns its footprint twice. Fold-away desks, expanding tables, and wall beds engineered for daily use.",
				Href:  "/services",
				Icon:  "layers",
			},
			{
				Title: "Built to your measurements",
				Body:  "We survey your space and build to the centimeter, from studio apartments to full office fit-outs.",
				Href:  "/services",
				Icon:  "ruler",
			},
			{
				Title: "Planned with you",
				Body:  "Describe your space to our project planner and get a preliminary concept, materials, and next steps in seconds.",
				Href:  "/planner",
				Icon:  "sparkles",
			},
		},
		Featured: catalog.Featured(3),
	}
}
