// Package voci reads and writes vocabulary unit files.
//
// A unit file holds one JSON object per line:
//
//	{"word1": "Baum", "word2": "tree", "correct": 2, "incorrect": 1, "score": 0.75}
//
// Only word1 and word2 are required; surrounding whitespace is dropped.
// "score" is the decayed recency score; when it is missing it is derived
// from the counters.
package voci

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"vocidrill/internal/domain"
)

type line struct {
	Word1     string   `json:"word1"`
	Word2     string   `json:"word2"`
	Correct   int      `json:"correct"`
	Incorrect int      `json:"incorrect"`
	Score     *float64 `json:"score,omitempty"`
}

// Read parses a unit from r
func Read(r io.Reader) ([]domain.WordPair, error) {
	var pairs []domain.WordPair

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var l line
		if err := json.Unmarshal([]byte(text), &l); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		l.Word1 = strings.TrimSpace(l.Word1)
		l.Word2 = strings.TrimSpace(l.Word2)
		if l.Word1 == "" || l.Word2 == "" {
			return nil, fmt.Errorf("line %d: word1 and word2 are required", lineNo)
		}
		if l.Correct < 0 || l.Incorrect < 0 {
			return nil, fmt.Errorf("line %d: counters cannot be negative", lineNo)
		}

		pair := domain.WordPair{
			Word1:     l.Word1,
			Word2:     l.Word2,
			Correct:   l.Correct,
			Incorrect: l.Incorrect,
		}
		if l.Score != nil {
			pair.Recency = *l.Score
		} else {
			pair.Recency = pair.Score()
		}
		pairs = append(pairs, pair)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// Write serializes pairs to w, one line per pair
func Write(w io.Writer, pairs []domain.WordPair) error {
	enc := json.NewEncoder(w)
	for _, p := range pairs {
		score := p.Recency
		if err := enc.Encode(line{
			Word1:     p.Word1,
			Word2:     p.Word2,
			Correct:   p.Correct,
			Incorrect: p.Incorrect,
			Score:     &score,
		}); err != nil {
			return fmt.Errorf("failed to write pair %q: %w", p.Word1, err)
		}
	}
	return nil
}

// ReadFile reads a unit file from disk
func ReadFile(path string) ([]domain.WordPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pairs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit %s: %w", path, err)
	}
	return pairs, nil
}

// WriteFile writes a unit file to disk, replacing any existing content
func WriteFile(path string, pairs []domain.WordPair) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, pairs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
