package domain

import "errors"

var (
	// ErrNotFound is returned when a word1 is not known to the store
	ErrNotFound = errors.New("word not found")
	// ErrEmptyStore is returned when there is no pair to select from
	ErrEmptyStore = errors.New("no word pairs configured")
	// ErrSubmissionInFlight is returned when a session is still judging a previous answer
	ErrSubmissionInFlight = errors.New("previous answer is still being judged")
	// ErrStalePrompt is returned when an answer targets a word that is not the current prompt
	ErrStalePrompt = errors.New("answer does not match the current prompt")
	// ErrSessionNotFound is returned for unknown session ids
	ErrSessionNotFound = errors.New("session not found")
)
