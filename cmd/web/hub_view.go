package main

import (
	"github.com/kenpro-automation/kenpro-web/internal/planner"
)

// HubView is the project hub page model: a grid of tool cards.
type HubView struct {
	Cards []HubCard
}

// HubCard is one launcher tile on the hub.
type HubCard struct {
	Title string
	Body  string
	Href  string
	CTA   string
}

// SitesView is the site viewer page model.
type SitesView struct {
	ExampleURL string
}

// SiteFrame embeds a validated published site.
type SiteFrame struct {
	URL string
}

// SiteError is the viewer error fragment model.
type SiteError struct {
	Message string
}

// SiteIdeaView wraps a generated site concept for the fragment.
type SiteIdeaView struct {
	Idea planner.SiteIdea
}

// SitePageContent is drafted copy for one page of a concept.
type SitePageContent struct {
	Page string
	Text string
}

func buildHubView() HubView {
	return HubView{
		Cards: []HubCard{
			{
				Title: "AI Project Planner",
				Body:  "Describe your space and get a preliminary concept, feature list, materials, and next steps.",
				Href:  "/planner",
				CTA:   "Start planning",
			},
			{
				Title: "Site Viewer",
				Body:  "Preview a published Google Sites project page right here, without leaving the hub.",
				Href:  "/hub/sites",
				CTA:   "Open the viewer",
			},
			{
				Title: "Site Idea Generator",
				Body:  "Want a project site of your own? Generate a site concept with pages and draft copy.",
				Href:  "/hub/sites",
				CTA:   "Generate an idea",
			},
		},
	}
}

func buildSitesView() SitesView {
	return SitesView{
		ExampleURL: "https://sites.google.com/view/your-project",
	}
}
