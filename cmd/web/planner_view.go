package main

import (
	"github.com/google/uuid"

	"github.com/kenpro-automation/kenpro-web/internal/planner"
)

// PlannerView is the planner page view model.
type PlannerView struct {
	Placeholder string
	Examples    []string
}

// PlannerResult is the generated plan fragment model. Exactly one of
// Plan or Text is set depending on the requested mode.
type PlannerResult struct {
	ID   string
	Idea string
	Plan *planner.ProjectPlan
	Text string
}

// PlannerError is the error fragment model.
type PlannerError struct {
	Message string
}

func buildPlannerView() PlannerView {
	return PlannerView{
		Placeholder: "e.g. I have a 25 square meter studio and need a bed, a desk, and storage for climbing gear",
		Examples: []string{
			"A home office that disappears at 6pm",
			"A dining table for 2 that hosts 8",
			"A kids room that grows with them",
		},
	}
}

func structuredPlanResult(idea string, plan *planner.ProjectPlan) PlannerResult {
	return PlannerResult{
		ID:   uuid.NewString(),
		Idea: idea,
		Plan: plan,
	}
}

func textPlanResult(idea, text string) PlannerResult {
	return PlannerResult{
		ID:   uuid.NewString(),
		Idea: idea,
		Text: text,
	}
}
