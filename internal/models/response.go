package models

import (
	"encoding/json"
	"fmt"
)

// ResponseKind tags the runtime shape of a ResponseValue.
type ResponseKind string

const (
	ResponseText ResponseKind = "text"
	ResponseBool ResponseKind = "boolean"
	ResponseList ResponseKind = "list"
)

// ResponseValue is the tagged variant holding a single answer. Exactly one of
// Text, Bool, or List is meaningful, selected by Kind. Dispatch happens on
// the owning question's declared type, never on reflection.
type ResponseValue struct {
	Kind ResponseKind
	Text string
	Bool bool
	List []string
}

// TextValue wraps a free-text or single-choice answer.
func TextValue(s string) ResponseValue {
	return ResponseValue{Kind: ResponseText, Text: s}
}

// BoolValue wraps a yes/no answer.
func BoolValue(b bool) ResponseValue {
	return ResponseValue{Kind: ResponseBool, Bool: b}
}

// ListValue wraps a multiselect answer.
func ListValue(items ...string) ResponseValue {
	return ResponseValue{Kind: ResponseList, List: items}
}

// responseValueJSON is the wire form used for session snapshots.
type responseValueJSON struct {
	Kind ResponseKind `json:"kind"`
	Text string       `json:"text,omitempty"`
	Bool bool         `json:"bool,omitempty"`
	List []string     `json:"list,omitempty"`
}

// MarshalJSON encodes the variant with an explicit kind tag so snapshots
// round-trip without shape loss.
func (v ResponseValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(responseValueJSON{Kind: v.Kind, Text: v.Text, Bool: v.Bool, List: v.List})
}

// UnmarshalJSON decodes the tagged wire form.
func (v *ResponseValue) UnmarshalJSON(data []byte) error {
	var w responseValueJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode response value: %w", err)
	}
	switch w.Kind {
	case ResponseText, ResponseBool, ResponseList:
	default:
		return fmt.Errorf("decode response value: unknown kind %q", w.Kind)
	}
	*v = ResponseValue{Kind: w.Kind, Text: w.Text, Bool: w.Bool, List: w.List}
	return nil
}

// Ledger maps question ids to the latest answer recorded for them. The
// latest write wins; no history is retained.
type Ledger map[string]ResponseValue

// NewLedger returns an empty response ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// Set records or overwrites the answer for a question id.
func (l Ledger) Set(questionID string, v ResponseValue) {
	l[questionID] = v
}

// Get returns the answer for a question id, if present.
func (l Ledger) Get(questionID string) (ResponseValue, bool) {
	v, ok := l[questionID]
	return v, ok
}

// Answered reports whether the question id has a recorded answer.
func (l Ledger) Answered(questionID string) bool {
	_, ok := l[questionID]
	return ok
}

// Count returns the number of distinct answered question ids.
func (l Ledger) Count() int {
	return len(l)
}
