package planner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// DefaultModel is the generation model used for all planner calls.
const DefaultModel = "gemini-2.5-flash"

const planSystemPrompt = `You are an expert consultant for Kenpro Automation, a company specializing in multifunctional furniture, space-saving solutions, and artisan joinery. A customer will describe their space or furniture need. Produce a concise, professional preliminary project plan for them. Be encouraging and practical. Recommend real materials and realistic features.`

const textPlanInstruction = `Organize the plan under exactly these headings: Project Concept, Key Features, Suggested Materials, Preliminary Timeline, Next Steps.`

const sitePrompt = `You are a creative web consultant for Kenpro Automation, a multifunctional furniture company. A user will describe a website they want. Propose a site concept: a short site title, a one-sentence tagline, and a list of page names.`

// Gemini implements Generator against the Gemini API. The zero value is
// unusable; construct it with NewGemini. The underlying client is built
// lazily on first use so that a missing credential surfaces as an error
// on the call, not at process start.
type Gemini struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini returns a Gemini generator using apiKey. An empty key is
// accepted here and reported as ErrMissingCredential on first call.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey, model: DefaultModel}
}

func (g *Gemini) conn(ctx context.Context) (*genai.Client, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, ErrMissingCredential
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		return nil, fmt.Errorf("planner: create client: %w", err)
	}
	g.client = client
	return client, nil
}

// planSchema constrains the structured plan response so the model cannot
// drop required fields or return prose.
func planSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"projectName": {
				Type:        genai.TypeString,
				Description: "A creative, fitting name for the furniture project.",
			},
			"suggestedFeatures": {
				Type:     genai.TypeArray,
				Items:    &genai.Schema{Type: genai.TypeString},
				MinItems: genai.Ptr[int64](3),
				MaxItems: genai.Ptr[int64](5),
			},
			"materialRecommendations": {
				Type:     genai.TypeArray,
				Items:    &genai.Schema{Type: genai.TypeString},
				MinItems: genai.Ptr[int64](2),
				MaxItems: genai.Ptr[int64](3),
			},
			"nextSteps": {
				Type:        genai.TypeString,
				Description: "A short paragraph telling the customer how to proceed.",
			},
		},
		Required: []string{"projectName", "suggestedFeatures", "materialRecommendations", "nextSteps"},
	}
}

func siteIdeaSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"tagline": {Type: genai.TypeString},
			"pages": {
				Type:     genai.TypeArray,
				Items:    &genai.Schema{Type: genai.TypeString},
				MinItems: genai.Ptr[int64](4),
				MaxItems: genai.Ptr[int64](6),
			},
		},
		Required: []string{"title", "tagline", "pages"},
	}
}

// GeneratePlan requests a structured plan for idea and validates the
// response against the required fields.
func (g *Gemini) GeneratePlan(ctx context.Context, idea string) (*ProjectPlan, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	client, err := g.conn(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(idea), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(planSystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    planSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("planner: generate plan: %w", err)
	}
	return DecodePlan(resp.Text())
}

// GeneratePlanText requests a prose plan organized under the fixed
// headings. The raw text is returned untouched; rendering to HTML is the
// caller's concern.
func (g *Gemini) GeneratePlanText(ctx context.Context, idea string) (string, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return "", ErrEmptyIdea
	}
	client, err := g.conn(ctx)
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(idea), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(planSystemPrompt+" "+textPlanInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("planner: generate plan text: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformedPlan)
	}
	return text, nil
}

// GenerateSiteIdea requests a site concept for the hub's idea generator.
func (g *Gemini) GenerateSiteIdea(ctx context.Context, idea string) (*SiteIdea, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	client, err := g.conn(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(idea), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(sitePrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    siteIdeaSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("planner: generate site idea: %w", err)
	}
	return DecodeSiteIdea(resp.Text())
}

// GeneratePageContent drafts copy for one page of a previously generated
// site concept.
func (g *Gemini) GeneratePageContent(ctx context.Context, idea SiteIdea, page string) (string, error) {
	page = strings.TrimSpace(page)
	if page == "" {
		return "", ErrEmptyIdea
	}
	client, err := g.conn(ctx)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Site: %s. Tagline: %s. Write short, friendly draft copy for the %q page.", idea.Title, idea.Tagline, page)
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(sitePrompt, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("planner: generate page content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformedPlan)
	}
	return text, nil
}
