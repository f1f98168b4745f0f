package interview

import "errors"

// Validation errors. These indicate caller mistakes and are returned loudly
// rather than coerced; the session stays in its last valid state.
var (
	// ErrNotCurrentQuestion is returned when an answer is submitted for a
	// question other than the one the interview is currently on.
	ErrNotCurrentQuestion = errors.New("answer does not target the current question")

	// ErrWrongShape is returned when an answer's runtime shape does not
	// match the question's declared type.
	ErrWrongShape = errors.New("answer shape does not match question type")

	// ErrRequiredQuestion is returned when Skip is called on a required
	// question.
	ErrRequiredQuestion = errors.New("cannot skip a required question")
)
