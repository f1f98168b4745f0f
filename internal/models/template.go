package models

import (
	"errors"
	"fmt"
)

// Section is one pre-authored block of planning documentation attached to a
// template.
type Section struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

// Template is a named agent archetype: declared capability tags for
// set-intersection scoring, target-use descriptions for keyword matching,
// and planning content consumed by the recommendation assembler. Templates
// are loaded once from the embedded catalog and immutable at runtime.
type Template struct {
	ID                     string             `yaml:"id" json:"id"`
	Name                   string             `yaml:"name" json:"name"`
	Description            string             `yaml:"description" json:"description"`
	CapabilityTags         []string           `yaml:"capability_tags" json:"capability_tags"`
	IdealFor               []string           `yaml:"ideal_for" json:"ideal_for"`
	PlanningChecklist      []string           `yaml:"planning_checklist" json:"planning_checklist"`
	ArchitecturePatterns   []string           `yaml:"architecture_patterns" json:"architecture_patterns"`
	RiskConsiderations     []string           `yaml:"risk_considerations" json:"risk_considerations"`
	SuccessCriteria        []string           `yaml:"success_criteria" json:"success_criteria"`
	ImplementationGuidance []string           `yaml:"implementation_guidance" json:"implementation_guidance"`
	DocumentSections       map[string]Section `yaml:"document_sections" json:"document_sections"`
}

// Validate checks that the template carries the fields scoring depends on.
func (t *Template) Validate() error {
	if t.ID == "" {
		return errors.New("template id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("template %s: name is required", t.ID)
	}
	if len(t.CapabilityTags) == 0 {
		return fmt.Errorf("template %s: at least one capability tag is required", t.ID)
	}
	return nil
}

// TemplateScore is the per-template outcome of one classification call.
type TemplateScore struct {
	TemplateID          string   `json:"template_id"`
	Score               float64  `json:"score"` // 0-100
	MatchedCapabilities []string `json:"matched_capabilities"`
	MissingCapabilities []string `json:"missing_capabilities"`
	Reasoning           string   `json:"reasoning"`
}

// ClassificationResult ranks every template against a requirements profile.
// Scores are ordered descending; ties keep catalog declaration order so the
// result is reproducible for identical input.
type ClassificationResult struct {
	Scores                []TemplateScore `json:"scores"`
	PrimaryRecommendation string          `json:"primary_recommendation"`
	Confidence            float64         `json:"confidence"` // 0-100
}

// PartialResult is the cheap in-progress archetype guess used for live
// feedback while the interview is still running. It must never stand in for
// the final classification.
type PartialResult struct {
	// TemplateID of the current best guess, empty when there is no signal yet
	TemplateID string `json:"template_id,omitempty"`

	// Name of the guessed archetype, empty when there is no signal yet
	Name string `json:"name,omitempty"`

	// Confidence in the guess (0-100); zero when there is no signal
	Confidence float64 `json:"confidence"`
}
