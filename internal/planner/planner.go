// Package planner turns a customer's free-text furniture idea into a
// preliminary project plan via the Gemini generative-language API, and
// powers the site-idea generator on the project hub.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Handlers map these to distinct user-facing messages;
// a configuration problem must be tellable apart from a flaky network.
var (
	// ErrEmptyIdea is returned before any network call when the idea is
	// empty or whitespace-only.
	ErrEmptyIdea = errors.New("planner: idea is empty")

	// ErrMissingCredential is returned at call time when no API key is
	// configured. Absence of the credential is not checked at startup.
	ErrMissingCredential = errors.New("planner: missing API credential")

	// ErrMalformedPlan is returned when the service responds but the
	// payload fails JSON decoding or schema validation. Callers treat
	// it the same as a transport failure; there is no partial success.
	ErrMalformedPlan = errors.New("planner: malformed plan response")
)

// ProjectPlan is the structured planner output. Every field is required;
// a response missing any of them is rejected as malformed.
type ProjectPlan struct {
	ProjectName             string   `json:"projectName"`
	SuggestedFeatures       []string `json:"suggestedFeatures"`
	MaterialRecommendations []string `json:"materialRecommendations"`
	NextSteps               string   `json:"nextSteps"`
}

// SiteIdea is the site-concept output used on the project hub: a name,
// a tagline, and a proposed page list. It is request-scoped and never
// merged with a previous idea.
type SiteIdea struct {
	Title   string   `json:"title"`
	Tagline string   `json:"tagline"`
	Pages   []string `json:"pages"`
}

// Generator produces plans and site ideas. Each call is independent and
// stateless: no retries, no caching, no cross-request coordination. The
// caller is responsible for not issuing overlapping requests from the
// same control.
type Generator interface {
	// GeneratePlan returns a schema-validated structured plan.
	GeneratePlan(ctx context.Context, idea string) (*ProjectPlan, error)
	// GeneratePlanText returns a prose plan organized under fixed
	// headings (Project Concept, Key Features, Suggested Materials,
	// Preliminary Timeline, Next Steps).
	GeneratePlanText(ctx context.Context, idea string) (string, error)
	// GenerateSiteIdea returns a site concept for the hub.
	GenerateSiteIdea(ctx context.Context, idea string) (*SiteIdea, error)
	// GeneratePageContent drafts copy for one page of a site concept.
	GeneratePageContent(ctx context.Context, idea SiteIdea, page string) (string, error)
}

// DecodePlan parses and validates a structured plan payload. Any decode
// or validation failure maps to ErrMalformedPlan so the caller surfaces
// a single "could not generate a plan" outcome.
func DecodePlan(raw string) (*ProjectPlan, error) {
	var plan ProjectPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	if err := plan.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	return &plan, nil
}

func (p *ProjectPlan) validate() error {
	if strings.TrimSpace(p.ProjectName) == "" {
		return errors.New("missing projectName")
	}
	if len(p.SuggestedFeatures) == 0 {
		return errors.New("missing suggestedFeatures")
	}
	if len(p.MaterialRecommendations) == 0 {
		return errors.New("missing materialRecommendations")
	}
	if strings.TrimSpace(p.NextSteps) == "" {
		return errors.New("missing nextSteps")
	}
	return nil
}

// DecodeSiteIdea parses and validates a site-idea payload.
func DecodeSiteIdea(raw string) (*SiteIdea, error) {
	var idea SiteIdea
	if err := json.Unmarshal([]byte(raw), &idea); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	if strings.TrimSpace(idea.Title) == "" || strings.TrimSpace(idea.Tagline) == "" || len(idea.Pages) == 0 {
		return nil, fmt.Errorf("%w: incomplete site idea", ErrMalformedPlan)
	}
	return &idea, nil
}
