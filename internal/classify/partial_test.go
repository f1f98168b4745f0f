package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/foundry/internal/models"
)

func TestPartialArchetypeNeedsMinimumAnswers(t *testing.T) {
	templates := loadTemplates(t)
	profile := analystProfile()

	for answered := 0; answered < minAnswersForSignal; answered++ {
		got := PartialArchetype(profile, answered, templates)
		assert.Empty(t, got.TemplateID, "answered=%d", answered)
		assert.Zero(t, got.Confidence, "answered=%d", answered)
	}

	got := PartialArchetype(profile, minAnswersForSignal, templates)
	assert.NotEmpty(t, got.TemplateID)
}

func TestPartialArchetypeGuessesFromCapabilities(t *testing.T) {
	templates := loadTemplates(t)

	profile := models.RequirementsProfile{
		PrimaryOutcome: "analyze csv data",
		Capabilities: &models.Capabilities{
			FileAccess:   true,
			DataAnalysis: true,
		},
	}

	got := PartialArchetype(profile, 5, templates)
	assert.Equal(t, "data-analyst", got.TemplateID)
	assert.Equal(t, "Data Analyst", got.Name)
	assert.Greater(t, got.Confidence, 0.0)
}

func TestPartialArchetypeNoSignalYieldsZeroResult(t *testing.T) {
	templates := loadTemplates(t)

	// Enough answers but nothing that maps to a capability or keyword.
	profile := models.RequirementsProfile{
		Name:           "Helper",
		TargetAudience: []string{"engineers"},
	}

	got := PartialArchetype(profile, 4, templates)
	assert.Empty(t, got.TemplateID)
	assert.Zero(t, got.Confidence)
}

func TestPartialConfidenceGrowsWithAnswers(t *testing.T) {
	templates := loadTemplates(t)
	profile := analystProfile()

	early := PartialArchetype(profile, 3, templates)
	late := PartialArchetype(profile, 6, templates)

	require.Equal(t, early.TemplateID, late.TemplateID)
	assert.Greater(t, late.Confidence, early.Confidence)
}

func TestPartialConfidenceIsCapped(t *testing.T) {
	templates := loadTemplates(t)
	profile := analystProfile()

	got := PartialArchetype(profile, 50, templates)
	assert.LessOrEqual(t, got.Confidence, partialConfidenceCeling)
}

func TestPartialStrongFlagBonus(t *testing.T) {
	// Synthetic catalog: memory is shared by two archetypes while
	// code-execution belongs to exactly one, so only the latter is a strong
	// flag for its owner.
	templates := []models.Template{
		{ID: "generalist", Name: "Generalist", CapabilityTags: []string{models.TagMemory, models.TagFileAccess}},
		{ID: "helper", Name: "Helper", CapabilityTags: []string{models.TagMemory}},
		{ID: "specialist", Name: "Specialist", CapabilityTags: []string{models.TagCodeExecution}},
	}

	weak := PartialArchetype(models.RequirementsProfile{
		Capabilities: &models.Capabilities{Memory: models.MemoryShortTerm},
	}, 3, templates)
	strong := PartialArchetype(models.RequirementsProfile{
		Capabilities: &models.Capabilities{CodeExecution: true},
	}, 3, templates)

	require.Equal(t, "generalist", weak.TemplateID)
	require.Equal(t, "specialist", strong.TemplateID)
	assert.Equal(t, weak.Confidence+partialStrongFlagBonus, strong.Confidence)
}

func TestPartialTieBreakKeepsDeclarationOrder(t *testing.T) {
	templates := []models.Template{
		{ID: "first", Name: "First", CapabilityTags: []string{models.TagMemory}},
		{ID: "second", Name: "Second", CapabilityTags: []string{models.TagMemory}},
	}
	profile := models.RequirementsProfile{
		Capabilities: &models.Capabilities{Memory: models.MemoryLongTerm},
	}

	got := PartialArchetype(profile, 3, templates)
	assert.Equal(t, "first", got.TemplateID)
}
