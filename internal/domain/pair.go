package domain

// WordPair is a prompt word with its canonical translation and attempt counters
type WordPair struct {
	Word1     string
	Word2     string
	Correct   int
	Incorrect int
	// Recency is an exponentially decayed success score in [0, 1).
	// Each attempt halves the previous value and adds 0.5 on success.
	Recency float64
}

// Attempts returns the number of recorded attempts
func (p WordPair) Attempts() int {
	return p.Correct + p.Incorrect
}

// Score returns the fraction of correct attempts, 0 when nothing was attempted yet
func (p WordPair) Score() float64 {
	if p.Attempts() == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Attempts())
}

// Record applies a single judged attempt to the counters
func (p *WordPair) Record(correct bool) {
	outcome := 0.0
	if correct {
		p.Correct++
		outcome = 1
	} else {
		p.Incorrect++
	}
	p.Recency = 0.5 * (p.Recency + outcome)
}

// Stats projects the pair into its reportable form
func (p WordPair) Stats() PairStats {
	return PairStats{
		Word1:     p.Word1,
		Word2:     p.Word2,
		Score:     p.Score(),
		Correct:   p.Correct,
		Incorrect: p.Incorrect,
		Recency:   p.Recency,
	}
}

// PairStats is one line of the statistics summary
type PairStats struct {
	Word1     string  `json:"word1"`
	Word2     string  `json:"word2"`
	Score     float64 `json:"score"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Recency   float64 `json:"recency"`
}

// Verdict is the result of judging a submitted translation.
// CanonicalWord2 is always set so callers can show the correction.
type Verdict struct {
	Correct        bool   `json:"correct"`
	CanonicalWord2 string `json:"canonical_word2"`
}
