// Package catalog loads the static question and template catalogs from YAML
// embedded at build time. Both catalogs are parsed once, validated, and
// immutable afterwards; all lookups preserve declaration order.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/harrison/foundry/internal/models"
)

//go:embed questions.yaml
var questionsYAML []byte

//go:embed templates.yaml
var templatesYAML []byte

// Catalog holds the loaded question and template catalogs.
type Catalog struct {
	questions []models.Question
	byID      map[string]int
	byStage   map[models.Stage][]models.Question

	templates     []models.Template
	templatesByID map[string]int
}

type questionsFile struct {
	Questions []models.Question `yaml:"questions"`
}

type templatesFile struct {
	Templates []models.Template `yaml:"templates"`
}

// Load parses the embedded catalogs and validates every entry.
func Load() (*Catalog, error) {
	return load(questionsYAML, templatesYAML)
}

// load builds a catalog from raw YAML. Split out so tests can feed custom
// catalogs through the same validation path.
func load(questionsData, templatesData []byte) (*Catalog, error) {
	var qf questionsFile
	if err := yaml.Unmarshal(questionsData, &qf); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}
	var tf templatesFile
	if err := yaml.Unmarshal(templatesData, &tf); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}

	c := &Catalog{
		questions:     qf.Questions,
		byID:          make(map[string]int, len(qf.Questions)),
		byStage:       make(map[models.Stage][]models.Question),
		templates:     tf.Templates,
		templatesByID: make(map[string]int, len(tf.Templates)),
	}

	for i := range c.questions {
		q := &c.questions[i]
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question catalog: %w", err)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("question catalog: duplicate id %q", q.ID)
		}
		c.byID[q.ID] = i
		c.byStage[q.Stage] = append(c.byStage[q.Stage], *q)
	}

	for i := range c.templates {
		t := &c.templates[i]
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("template catalog: %w", err)
		}
		if _, dup := c.templatesByID[t.ID]; dup {
			return nil, fmt.Errorf("template catalog: duplicate id %q", t.ID)
		}
		c.templatesByID[t.ID] = i
	}

	if len(c.questions) == 0 {
		return nil, fmt.Errorf("question catalog is empty")
	}
	if len(c.templates) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}

	// Every non-terminal stage must hold at least one question, otherwise
	// the state machine's stage advance would skip straight through it.
	for _, stage := range models.StageOrder {
		if len(c.byStage[stage]) == 0 {
			return nil, fmt.Errorf("question catalog: stage %q has no questions", stage)
		}
	}

	return c, nil
}

// Questions returns all questions in catalog order.
func (c *Catalog) Questions() []models.Question {
	return c.questions
}

// QuestionsForStage returns the questions of one stage in catalog order.
func (c *Catalog) QuestionsForStage(stage models.Stage) []models.Question {
	return c.byStage[stage]
}

// QuestionByID looks up a question by id.
func (c *Catalog) QuestionByID(id string) (models.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// TotalQuestions returns the number of questions across all stages.
func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}

// Templates returns all templates in declaration order.
func (c *Catalog) Templates() []models.Template {
	return c.templates
}

// TemplateByID looks up a template by id.
func (c *Catalog) TemplateByID(id string) (models.Template, bool) {
	i, ok := c.templatesByID[id]
	if !ok {
		return models.Template{}, false
	}
	return c.templates[i], true
}
