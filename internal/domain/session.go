package domain

// SessionState represents where a quiz session is in its loop
type SessionState string

const (
	StateAwaitingAnswer SessionState = "awaiting_answer"
	StateJudging        SessionState = "judging"
)

// SubmitResult bundles the verdict for the answered pair with the next prompt
type SubmitResult struct {
	Word1   string
	Verdict Verdict
	Next    WordPair
}
