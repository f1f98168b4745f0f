// Package interview implements the staged interview state machine and the
// per-question derivation rules that build the requirements profile.
//
// The engine owns the session aggregate. All mutation goes through the named
// operations; reads go through getters that never expose mutable internals.
// After every mutating operation the engine hands a deep snapshot to the
// persistence collaborator without waiting for the write to land.
package interview

import (
	"fmt"
	"math"

	"github.com/harrison/foundry/internal/catalog"
	"github.com/harrison/foundry/internal/models"
)

// Saver is the fire-and-forget persistence collaborator. Implementations
// must not block; a failed save is surfaced out of band, never to the
// operation that triggered it.
type Saver interface {
	SaveAsync(session *models.Session)
}

// Engine advances and rewinds one interview session. It is not safe for
// concurrent use; a single caller drives it one operation at a time.
type Engine struct {
	catalog *catalog.Catalog
	session *models.Session
	saver   Saver
}

// Progress summarizes interview completion by answer count, not pointer
// position, so skips and out-of-order edits are reflected correctly.
type Progress struct {
	Answered   int `json:"answered"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// NewEngine starts a fresh interview session. The saver may be nil, in which
// case persistence is skipped entirely.
func NewEngine(cat *catalog.Catalog, saver Saver) *Engine {
	return &Engine{
		catalog: cat,
		session: models.NewSession(),
		saver:   saver,
	}
}

// Resume wraps a previously persisted session. Positions outside the current
// catalog (for example after a catalog change) are clamped to the nearest
// valid question.
func Resume(cat *catalog.Catalog, session *models.Session, saver Saver) (*Engine, error) {
	if session == nil {
		return nil, fmt.Errorf("resume: session is nil")
	}
	e := &Engine{catalog: cat, session: session, saver: saver}
	if !session.IsComplete {
		e.clampPosition()
	}
	return e, nil
}

// Session returns a deep copy of the current session state.
func (e *Engine) Session() *models.Session {
	return e.session.Clone()
}

// SessionID returns the session identifier.
func (e *Engine) SessionID() string {
	return e.session.ID
}

// Profile returns a copy of the derived requirements profile.
func (e *Engine) Profile() models.RequirementsProfile {
	return e.session.Requirements.Clone()
}

// IsComplete reports whether the interview has exhausted every stage.
func (e *Engine) IsComplete() bool {
	return e.session.IsComplete
}

// CurrentQuestion returns the question at the current stage and pointer, or
// nil once the interview is complete.
func (e *Engine) CurrentQuestion() *models.Question {
	if e.session.IsComplete {
		return nil
	}
	stageQuestions := e.catalog.QuestionsForStage(e.session.CurrentStage)
	idx := e.session.CurrentQuestionIndex
	if idx < 0 || idx >= len(stageQuestions) {
		return nil
	}
	q := stageQuestions[idx]
	return &q
}

// RecordResponse validates the answer against the current question, writes
// it to the ledger, re-derives the profile fields owned by that question,
// and advances the pointer. The stage advance is unconditional; required
// question enforcement happens before this call.
func (e *Engine) RecordResponse(questionID string, v models.ResponseValue) error {
	cur := e.CurrentQuestion()
	if cur == nil || cur.ID != questionID {
		return fmt.Errorf("record response %q: %w", questionID, ErrNotCurrentQuestion)
	}
	if !cur.Accepts(v) {
		return fmt.Errorf("record response %q: expected %s answer, got %s: %w",
			questionID, cur.Type, v.Kind, ErrWrongShape)
	}

	e.session.Responses.Set(questionID, v.Clone())
	Derive(&e.session.Requirements, questionID, v)
	e.advance()
	e.persist()
	return nil
}

// Skip advances past the current question without touching the ledger or
// the profile. Required questions cannot be skipped; the session is left
// unchanged and an error is returned. Skipping a finished interview is a
// no-op.
func (e *Engine) Skip() error {
	cur := e.CurrentQuestion()
	if cur == nil {
		return nil
	}
	if cur.Required {
		return fmt.Errorf("skip %q: %w", cur.ID, ErrRequiredQuestion)
	}
	e.advance()
	e.persist()
	return nil
}

// GoBack moves to the previous question, crossing stage boundaries as
// needed and clearing completion. At the very first question it is a no-op.
func (e *Engine) GoBack() {
	s := e.session
	if s.IsComplete {
		last := models.StageOrder[len(models.StageOrder)-1]
		count := len(e.catalog.QuestionsForStage(last))
		s.CurrentStage = last
		s.CurrentQuestionIndex = max(0, count-1)
		s.IsComplete = false
		e.persist()
		return
	}
	if s.CurrentQuestionIndex > 0 {
		s.CurrentQuestionIndex--
		e.persist()
		return
	}
	prevIdx := stageIndex(s.CurrentStage) - 1
	if prevIdx < 0 {
		return // already at the very first question
	}
	prev := models.StageOrder[prevIdx]
	count := len(e.catalog.QuestionsForStage(prev))
	s.CurrentStage = prev
	s.CurrentQuestionIndex = max(0, count-1)
	e.persist()
}

// NavigateTo jumps to the stage and pointer owning the given question id,
// clearing completion so the answer can be reviewed or edited. Unknown ids
// are a no-op. Ledger entries are never erased by navigation.
func (e *Engine) NavigateTo(questionID string) {
	q, ok := e.catalog.QuestionByID(questionID)
	if !ok {
		return
	}
	for i, sq := range e.catalog.QuestionsForStage(q.Stage) {
		if sq.ID == questionID {
			e.session.CurrentStage = q.Stage
			e.session.CurrentQuestionIndex = i
			e.session.IsComplete = false
			e.persist()
			return
		}
	}
}

// Progress reports answered count, total question count, and a rounded
// percentage.
func (e *Engine) Progress() Progress {
	answered := e.session.Responses.Count()
	total := e.catalog.TotalQuestions()
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(answered) / float64(total)))
	}
	return Progress{Answered: answered, Total: total, Percentage: pct}
}

// AttachRecommendation stores the final recommendation on the session and
// persists the updated snapshot.
func (e *Engine) AttachRecommendation(rec *models.AgentRecommendation) {
	e.session.Recommendation = rec.Clone()
	e.persist()
}

// advance moves the question pointer forward, rolling into the next stage
// when the current one is exhausted and marking completion after the last
// stage. The transition never checks required-question coverage; that is the
// caller's responsibility before recording or skipping.
func (e *Engine) advance() {
	s := e.session
	s.CurrentQuestionIndex++
	if s.CurrentQuestionIndex < len(e.catalog.QuestionsForStage(s.CurrentStage)) {
		return
	}
	nextIdx := stageIndex(s.CurrentStage) + 1
	if nextIdx >= len(models.StageOrder) {
		s.CurrentStage = models.StageComplete
		s.CurrentQuestionIndex = 0
		s.IsComplete = true
		return
	}
	s.CurrentStage = models.StageOrder[nextIdx]
	s.CurrentQuestionIndex = 0
}

// clampPosition snaps an out-of-range resume position to a valid question.
func (e *Engine) clampPosition() {
	s := e.session
	if stageIndex(s.CurrentStage) < 0 {
		s.CurrentStage = models.StageOrder[0]
		s.CurrentQuestionIndex = 0
		return
	}
	count := len(e.catalog.QuestionsForStage(s.CurrentStage))
	if s.CurrentQuestionIndex < 0 {
		s.CurrentQuestionIndex = 0
	}
	if s.CurrentQuestionIndex >= count {
		s.CurrentQuestionIndex = max(0, count-1)
	}
}

// persist hands a deep snapshot to the saver. In-memory state is already
// updated by the time this runs, so a failed or stale write can never
// corrupt the live session.
func (e *Engine) persist() {
	if e.saver == nil {
		return
	}
	e.saver.SaveAsync(e.session.Clone())
}

// stageIndex returns the position of a stage in StageOrder, or -1 for the
// terminal stage.
func stageIndex(stage models.Stage) int {
	for i, s := range models.StageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}
