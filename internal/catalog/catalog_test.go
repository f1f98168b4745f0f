package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/foundry/internal/models"
)

func TestLoadEmbeddedCatalogs(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cat)

	assert.Greater(t, cat.TotalQuestions(), 0)
	assert.Greater(t, len(cat.Templates()), 0)

	// Every non-terminal stage must hold questions.
	for _, stage := range models.StageOrder {
		assert.NotEmpty(t, cat.QuestionsForStage(stage), "stage %s", stage)
	}
}

func TestQuestionLookup(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	q, ok := cat.QuestionByID("agent-name")
	require.True(t, ok)
	assert.Equal(t, models.StageDiscovery, q.Stage)
	assert.Equal(t, models.QuestionText, q.Type)
	assert.True(t, q.Required)

	_, ok = cat.QuestionByID("no-such-question")
	assert.False(t, ok)
}

func TestTemplateLookup(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	tmpl, ok := cat.TemplateByID("data-analyst")
	require.True(t, ok)
	assert.Equal(t, "Data Analyst", tmpl.Name)
	assert.Contains(t, tmpl.CapabilityTags, models.TagDataAnalysis)
	assert.Contains(t, tmpl.CapabilityTags, models.TagFileAccess)

	_, ok = cat.TemplateByID("no-such-template")
	assert.False(t, ok)
}

func TestStageQuestionsPreserveOrder(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	// Stage slices must appear in the same order as the flat catalog.
	var flattened []string
	for _, stage := range models.StageOrder {
		for _, q := range cat.QuestionsForStage(stage) {
			flattened = append(flattened, q.ID)
		}
	}

	var catalogOrder []string
	for _, q := range cat.Questions() {
		catalogOrder = append(catalogOrder, q.ID)
	}
	assert.Equal(t, catalogOrder, flattened)
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	validTemplates := []byte(`
templates:
  - id: t1
    name: One
    capability_tags: [memory]
`)

	tests := []struct {
		name      string
		questions string
		templates []byte
	}{
		{
			name: "duplicate question id",
			questions: `
questions:
  - {id: q1, stage: discovery, prompt: p, type: text}
  - {id: q1, stage: requirements, prompt: p, type: text}
  - {id: q2, stage: architecture, prompt: p, type: text}
  - {id: q3, stage: output, prompt: p, type: text}
`,
			templates: validTemplates,
		},
		{
			name: "stage with no questions",
			questions: `
questions:
  - {id: q1, stage: discovery, prompt: p, type: text}
`,
			templates: validTemplates,
		},
		{
			name: "choice question without options",
			questions: `
questions:
  - {id: q1, stage: discovery, prompt: p, type: choice}
  - {id: q2, stage: requirements, prompt: p, type: text}
  - {id: q3, stage: architecture, prompt: p, type: text}
  - {id: q4, stage: output, prompt: p, type: text}
`,
			templates: validTemplates,
		},
		{
			name: "template without tags",
			questions: `
questions:
  - {id: q1, stage: discovery, prompt: p, type: text}
  - {id: q2, stage: requirements, prompt: p, type: text}
  - {id: q3, stage: architecture, prompt: p, type: text}
  - {id: q4, stage: output, prompt: p, type: text}
`,
			templates: []byte(`
templates:
  - id: t1
    name: One
    capability_tags: []
`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load([]byte(tt.questions), tt.templates)
			require.Error(t, err)
		})
	}
}
