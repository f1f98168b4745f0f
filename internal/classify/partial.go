package classify

import (
	"math"
	"strings"

	"github.com/harrison/foundry/internal/models"
)

// Partial-mode tuning. The guess only appears after minAnswersForSignal
// distinct questions are answered, and its confidence grows with the number
// of answers plus a bonus when an active capability flag is unique to the
// winning archetype.
const (
	minAnswersForSignal = 3

	partialBaseConfidence   = 25.0
	partialPerAnswer        = 8.0
	partialStrongFlagBonus  = 12.0
	partialConfidenceCeling = 85.0
)

// PartialArchetype returns a cheap best-guess archetype for an in-progress
// interview. It never fails on a sparse profile: with fewer than three
// answers, or no usable signal at all, it returns the zero result. The guess
// is for progressive feedback only and must not replace Classify.
func PartialArchetype(profile models.RequirementsProfile, answeredCount int, templates []models.Template) models.PartialResult {
	if answeredCount < minAnswersForSignal || len(templates) == 0 {
		return models.PartialResult{}
	}

	activeTags := profile.ActiveCapabilityTags()
	outcome := strings.ToLower(profile.PrimaryOutcome)

	// Count how many templates declare each tag; a tag declared by exactly
	// one template is a strong signal for it.
	tagOwners := make(map[string]int)
	for _, tmpl := range templates {
		for _, tag := range tmpl.CapabilityTags {
			tagOwners[tag]++
		}
	}

	active := make(map[string]bool, len(activeTags))
	for _, tag := range activeTags {
		active[tag] = true
	}

	bestIdx := -1
	bestVotes := 0
	bestStrong := false
	for i, tmpl := range templates {
		votes := 0
		strong := false
		for _, tag := range tmpl.CapabilityTags {
			if active[tag] {
				votes += 2
				if tagOwners[tag] == 1 {
					strong = true
				}
			}
		}
		if outcome != "" {
			for _, term := range tmpl.IdealFor {
				if term != "" && strings.Contains(outcome, strings.ToLower(term)) {
					votes++
				}
			}
		}
		// Strict greater-than keeps declaration order as the tie-break.
		if votes > bestVotes {
			bestIdx = i
			bestVotes = votes
			bestStrong = strong
		}
	}

	if bestIdx < 0 {
		return models.PartialResult{}
	}

	conf := partialBaseConfidence + partialPerAnswer*float64(answeredCount)
	if bestStrong {
		conf += partialStrongFlagBonus
	}
	conf = math.Min(conf, partialConfidenceCeling)

	return models.PartialResult{
		TemplateID: templates[bestIdx].ID,
		Name:       templates[bestIdx].Name,
		Confidence: round2(conf),
	}
}
