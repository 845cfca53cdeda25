package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kenpro-automation/kenpro-web/internal/planner"
)

// User-facing planner failure copy. A configuration problem reads
// differently from a transient failure so support tickets make sense.
const (
	plannerMsgEmptyIdea   = "Please describe your project before generating a plan."
	plannerMsgConfig      = "There was an issue with the API configuration. Please contact support."
	plannerMsgUnavailable = "Sorry, we couldn't generate a plan at this moment. Please try again later."
)

// PlannerHandler renders the AI project planner page.
func PlannerHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePageData(r, "AI Project Planner",
		"Describe your space or furniture need and get a preliminary project concept, features, materials, and next steps.")
	vm.Planner = buildPlannerView()
	renderPage(w, r, "planner", vm)
}

// PlannerGenerateHandler handles plan generation. It always answers with
// an html fragment: a result card on success, an error card otherwise.
func PlannerGenerateHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	idea := strings.TrimSpace(r.FormValue("idea"))
	mode := r.FormValue("mode")
	if idea == "" {
		renderPlannerError(w, r, http.StatusUnprocessableEntity, plannerMsgEmptyIdea)
		return
	}

	ctx := r.Context()
	if mode == "text" {
		text, err := plannerGen.GeneratePlanText(ctx, idea)
		if err != nil {
			planError(w, r, err)
			return
		}
		renderTemplate(w, r, "frag_planner_result", textPlanResult(idea, text))
		return
	}

	plan, err := plannerGen.GeneratePlan(ctx, idea)
	if err != nil {
		planError(w, r, err)
		return
	}
	renderTemplate(w, r, "frag_planner_result", structuredPlanResult(idea, plan))
}

func planError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, planner.ErrEmptyIdea):
		renderPlannerError(w, r, http.StatusUnprocessableEntity, plannerMsgEmptyIdea)
	case errors.Is(err, planner.ErrMissingCredential):
		logger.Error("planner credential missing")
		renderPlannerError(w, r, http.StatusBadGateway, plannerMsgConfig)
	default:
		logger.Error("planner generate", zap.Error(err))
		renderPlannerError(w, r, http.StatusBadGateway, plannerMsgUnavailable)
	}
}

func renderPlannerError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	renderTemplate(w, r, "frag_planner_error", PlannerError{Message: msg})
}
