package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the aggregate root for one interview. It is created on
// interview start, mutated only through the state machine's operations, and
// snapshotted whole to storage after every mutation (last-write-wins keyed
// by ID).
type Session struct {
	ID                   string               `json:"id"`
	CurrentStage         Stage                `json:"current_stage"`
	CurrentQuestionIndex int                  `json:"current_question_index"`
	Responses            Ledger               `json:"responses"`
	Requirements         RequirementsProfile  `json:"requirements"`
	Recommendation       *AgentRecommendation `json:"recommendation,omitempty"`
	IsComplete           bool                 `json:"is_complete"`
	StartedAt            time.Time            `json:"started_at"`
}

// NewSession creates a fresh session positioned at the first question of the
// first stage.
func NewSession() *Session {
	return &Session{
		ID:           uuid.NewString(),
		CurrentStage: StageOrder[0],
		Responses:    NewLedger(),
		StartedAt:    time.Now().UTC(),
	}
}
