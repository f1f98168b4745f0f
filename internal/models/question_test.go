package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  bool
	}{
		{
			name: "valid text question",
			question: Question{
				ID: "agent-name", Stage: StageDiscovery,
				Prompt: "What should your agent be called?", Type: QuestionText,
			},
			wantErr: false,
		},
		{
			name: "valid choice question",
			question: Question{
				ID: "memory", Stage: StageRequirements,
				Prompt: "How much memory?", Type: QuestionChoice,
				Options: []string{"none", "short-term"},
			},
			wantErr: false,
		},
		{
			name:     "missing id",
			question: Question{Stage: StageDiscovery, Prompt: "p", Type: QuestionText},
			wantErr:  true,
		},
		{
			name:     "missing prompt",
			question: Question{ID: "x", Stage: StageDiscovery, Type: QuestionText},
			wantErr:  true,
		},
		{
			name: "choice without options",
			question: Question{
				ID: "x", Stage: StageDiscovery, Prompt: "p", Type: QuestionChoice,
			},
			wantErr: true,
		},
		{
			name: "multiselect without options",
			question: Question{
				ID: "x", Stage: StageDiscovery, Prompt: "p", Type: QuestionMultiSelect,
			},
			wantErr: true,
		},
		{
			name: "unknown type",
			question: Question{
				ID: "x", Stage: StageDiscovery, Prompt: "p", Type: "range",
			},
			wantErr: true,
		},
		{
			name: "terminal stage holds no questions",
			question: Question{
				ID: "x", Stage: StageComplete, Prompt: "p", Type: QuestionText,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestQuestionAccepts(t *testing.T) {
	tests := []struct {
		name  string
		qtype QuestionType
		value ResponseValue
		want  bool
	}{
		{"text accepts text", QuestionText, TextValue("hi"), true},
		{"text rejects bool", QuestionText, BoolValue(true), false},
		{"text rejects list", QuestionText, ListValue("a"), false},
		{"choice accepts text", QuestionChoice, TextValue("cloud"), true},
		{"choice rejects list", QuestionChoice, ListValue("cloud"), false},
		{"boolean accepts bool", QuestionBoolean, BoolValue(false), true},
		{"boolean rejects text", QuestionBoolean, TextValue("yes"), false},
		{"multiselect accepts list", QuestionMultiSelect, ListValue("a", "b"), true},
		{"multiselect rejects text", QuestionMultiSelect, TextValue("a,b"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{ID: "q", Type: tt.qtype}
			assert.Equal(t, tt.want, q.Accepts(tt.value))
		})
	}
}
