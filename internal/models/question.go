// Package models defines the core data types for the foundry interview
// engine: the question catalog entries, the response ledger, the derived
// requirements profile, agent templates, classification results, and the
// session aggregate that ties them together.
package models

import (
	"errors"
	"fmt"
)

// Stage identifies one of the ordered phases of the interview.
type Stage string

const (
	StageDiscovery    Stage = "discovery"
	StageRequirements Stage = "requirements"
	StageArchitecture Stage = "architecture"
	StageOutput       Stage = "output"
	StageComplete     Stage = "complete"
)

// StageOrder lists the non-terminal stages in interview order. The terminal
// StageComplete is intentionally excluded; it holds no questions.
var StageOrder = []Stage{
	StageDiscovery,
	StageRequirements,
	StageArchitecture,
	StageOutput,
}

// QuestionType declares the answer shape a question accepts.
type QuestionType string

const (
	QuestionText        QuestionType = "text"
	QuestionChoice      QuestionType = "choice"
	QuestionMultiSelect QuestionType = "multiselect"
	QuestionBoolean     QuestionType = "boolean"
)

// Question is a single catalog entry. Questions are defined once at process
// start and never mutated afterwards.
type Question struct {
	ID       string       `yaml:"id" json:"id"`
	Stage    Stage        `yaml:"stage" json:"stage"`
	Prompt   string       `yaml:"prompt" json:"prompt"`
	Type     QuestionType `yaml:"type" json:"type"`
	Options  []string     `yaml:"options,omitempty" json:"options,omitempty"`
	Required bool         `yaml:"required" json:"required"`
	Hint     string       `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// Validate checks that the question has all required fields and a coherent
// type/options combination.
func (q *Question) Validate() error {
	if q.ID == "" {
		return errors.New("question id is required")
	}
	if q.Prompt == "" {
		return fmt.Errorf("question %s: prompt is required", q.ID)
	}
	switch q.Type {
	case QuestionText, QuestionBoolean:
		// No options expected.
	case QuestionChoice, QuestionMultiSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: %s questions need at least one option", q.ID, q.Type)
		}
	default:
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}
	valid := false
	for _, s := range StageOrder {
		if q.Stage == s {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("question %s: unknown stage %q", q.ID, q.Stage)
	}
	return nil
}

// Accepts reports whether the given response value has the runtime shape this
// question's declared type requires. Shape mismatches are usage errors and
// must be rejected before the value reaches the ledger.
func (q *Question) Accepts(v ResponseValue) bool {
	switch q.Type {
	case QuestionText, QuestionChoice:
		return v.Kind == ResponseText
	case QuestionMultiSelect:
		return v.Kind == ResponseList
	case QuestionBoolean:
		return v.Kind == ResponseBool
	}
	return false
}
