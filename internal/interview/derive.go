package interview

import (
	"strings"

	"github.com/harrison/foundry/internal/catalog"
	"github.com/harrison/foundry/internal/models"
)

// Rule is a pure transformation applied when one question is answered. Each
// rule overwrites exactly the profile fields owned by its question id, so
// re-applying the same answer is idempotent and rewinding the interview
// leaves no accumulation artifacts.
type Rule func(p *models.RequirementsProfile, v models.ResponseValue)

// rules binds every question id to the single rule that owns its profile
// fields. The validate command checks this table against the catalog so the
// two cannot drift silently.
var rules = map[string]Rule{
	"agent-name": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.Name = strings.TrimSpace(v.Text)
	},
	"agent-description": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.Description = strings.TrimSpace(v.Text)
	},
	"primary-outcome": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.PrimaryOutcome = strings.TrimSpace(v.Text)
	},
	"target-audience": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.TargetAudience = cleanList(v.List)
	},
	"interaction-style": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.InteractionStyle = parseInteractionStyle(v.Text)
	},
	"delivery-channels": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.DeliveryChannels = cleanList(v.List)
	},
	"success-metrics": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.SuccessMetrics = cleanList(v.List)
	},
	"memory": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.EnsureCapabilities().Memory = parseMemoryLevel(v.Text)
	},
	"file-access": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.EnsureCapabilities().FileAccess = v.Bool
	},
	"web-access": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.EnsureCapabilities().WebAccess = v.Bool
	},
	"code-execution": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.EnsureCapabilities().CodeExecution = v.Bool
	},
	"data-analysis": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.EnsureCapabilities().DataAnalysis = v.Bool
	},
	"tool-integrations": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.EnsureCapabilities().ToolIntegrations = cleanList(v.List)
	},
	"runtime": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.Environment = &models.Environment{Runtime: parseRuntime(v.Text)}
	},
	"constraints": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.Constraints = splitCSV(v.Text)
	},
	"additional-notes": func(p *models.RequirementsProfile, v models.ResponseValue) {
		p.AdditionalNotes = strings.TrimSpace(v.Text)
	},
}

// Derive applies the rule owning questionID to the profile. Unmapped ids are
// a no-op; the validate command reports them ahead of time.
func Derive(p *models.RequirementsProfile, questionID string, v models.ResponseValue) {
	if rule, ok := rules[questionID]; ok {
		rule(p, v)
	}
}

// HasRule reports whether a derivation rule exists for the question id.
func HasRule(questionID string) bool {
	_, ok := rules[questionID]
	return ok
}

// UncoveredQuestions returns catalog question ids that have no derivation
// rule, in catalog order.
func UncoveredQuestions(cat *catalog.Catalog) []string {
	var missing []string
	for _, q := range cat.Questions() {
		if !HasRule(q.ID) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// splitCSV splits comma-separated free text, trims each entry, and drops
// empties. An all-whitespace answer yields an empty slice, not nil, so the
// field reads as answered-but-empty.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := []string{}
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// cleanList trims multiselect entries and drops empties.
func cleanList(items []string) []string {
	out := []string{}
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseInteractionStyle(s string) models.InteractionStyle {
	switch models.InteractionStyle(strings.ToLower(strings.TrimSpace(s))) {
	case models.StyleConversational:
		return models.StyleConversational
	case models.StyleCollaborative:
		return models.StyleCollaborative
	default:
		return models.StyleTaskFocused
	}
}

func parseMemoryLevel(s string) models.MemoryLevel {
	switch models.MemoryLevel(strings.ToLower(strings.TrimSpace(s))) {
	case models.MemoryShortTerm:
		return models.MemoryShortTerm
	case models.MemoryLongTerm:
		return models.MemoryLongTerm
	default:
		return models.MemoryNone
	}
}

func parseRuntime(s string) models.RuntimeEnvironment {
	switch models.RuntimeEnvironment(strings.ToLower(strings.TrimSpace(s))) {
	case models.RuntimeLocal:
		return models.RuntimeLocal
	case models.RuntimeHybrid:
		return models.RuntimeHybrid
	default:
		return models.RuntimeCloud
	}
}
