// Package classify scores a requirements profile against the template
// catalog. Full mode ranks every template with explanations and an aggregate
// confidence; partial mode produces a cheap best-guess archetype for live
// feedback while the interview is still running.
//
// Scoring is deterministic: identical input yields identical scores and
// ordering. The weights are package constants covered by tests, not wire
// contracts.
package classify

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/harrison/foundry/internal/models"
)

// ErrProfileIncomplete is returned when full-mode classification is invoked
// before the minimum profile fields (name, primary outcome, interaction
// style) are populated. Calling Classify early is a usage error; partial
// mode exists for in-progress profiles.
var ErrProfileIncomplete = errors.New("profile is missing fields required for classification")

// Scoring weights. Baseline keeps every template above zero, the match
// weight rewards the proportion of template tags covered, and the keyword
// weight rewards outcome text hitting a template's ideal-for terms.
const (
	baselineScore   = 12.0
	matchWeight     = 70.0
	keywordWeight   = 9.0
	keywordBonusCap = 18.0

	// Confidence compression: the top score is scaled down when the gap to
	// the runner-up is narrow. A gap of gapWindow points or more leaves the
	// top score uncompressed.
	gapWindow       = 25.0
	confidenceFloor = 0.55
)

// Classify ranks every template against the profile and returns the full
// classification result. The profile must carry at least a name, a primary
// outcome, and an interaction style.
func Classify(profile models.RequirementsProfile, templates []models.Template) (*models.ClassificationResult, error) {
	if !profile.ReadyForClassification() {
		return nil, fmt.Errorf("classify %q: %w", profile.Name, ErrProfileIncomplete)
	}
	if len(templates) == 0 {
		return nil, errors.New("classify: template catalog is empty")
	}

	activeTags := profile.ActiveCapabilityTags()
	outcome := strings.ToLower(profile.PrimaryOutcome)

	scores := make([]models.TemplateScore, 0, len(templates))
	for _, tmpl := range templates {
		scores = append(scores, scoreTemplate(tmpl, activeTags, outcome))
	}

	// Descending by score; the stable sort keeps catalog declaration order
	// for ties so results are reproducible.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return &models.ClassificationResult{
		Scores:                scores,
		PrimaryRecommendation: scores[0].TemplateID,
		Confidence:            confidence(scores),
	}, nil
}

// scoreTemplate computes one template's score from tag intersection and
// outcome keyword hits.
func scoreTemplate(tmpl models.Template, activeTags []string, outcome string) models.TemplateScore {
	active := make(map[string]bool, len(activeTags))
	for _, tag := range activeTags {
		active[tag] = true
	}

	matched := []string{}
	missing := []string{}
	for _, tag := range tmpl.CapabilityTags {
		if active[tag] {
			matched = append(matched, tag)
		} else {
			missing = append(missing, tag)
		}
	}

	matchedRatio := 0.0
	if len(tmpl.CapabilityTags) > 0 {
		matchedRatio = float64(len(matched)) / float64(len(tmpl.CapabilityTags))
	}

	var hits []string
	for _, term := range tmpl.IdealFor {
		if term != "" && strings.Contains(outcome, strings.ToLower(term)) {
			hits = append(hits, term)
		}
	}
	bonus := math.Min(keywordWeight*float64(len(hits)), keywordBonusCap)

	score := clamp(baselineScore+matchWeight*matchedRatio+bonus, 0, 100)

	reasoning := fmt.Sprintf("matched %d of %d capability tags", len(matched), len(tmpl.CapabilityTags))
	if len(hits) > 0 {
		reasoning += fmt.Sprintf("; outcome keyword match: %s", strings.Join(hits, ", "))
	} else {
		reasoning += "; no outcome keyword match"
	}

	return models.TemplateScore{
		TemplateID:          tmpl.ID,
		Score:               round2(score),
		MatchedCapabilities: matched,
		MissingCapabilities: missing,
		Reasoning:           reasoning,
	}
}

// confidence compresses the top score toward the gap between the top two
// scores. Monotonic in both the top score and the gap: a decisive win keeps
// the full top score, a photo finish compresses it toward the floor.
func confidence(scores []models.TemplateScore) float64 {
	top := scores[0].Score
	gap := gapWindow
	if len(scores) > 1 {
		gap = top - scores[1].Score
	}
	factor := confidenceFloor + (1-confidenceFloor)*math.Min(1, gap/gapWindow)
	return round2(clamp(top*factor, 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
