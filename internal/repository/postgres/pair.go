package postgres

import (
	"database/sql"
	"fmt"

	"vocidrill/internal/domain"
)

// PairRepo implements repository.PairRepository
type PairRepo struct {
	db *sql.DB
}

// NewPairRepo creates a new word pair repository
func NewPairRepo(db *sql.DB) *PairRepo {
	return &PairRepo{db: db}
}

// LoadPairs returns all stored pairs in insertion order
func (r *PairRepo) LoadPairs() ([]domain.WordPair, error) {
	query := `
		SELECT word1, word2, correct, incorrect, recency
		FROM word_pairs
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []domain.WordPair
	for rows.Next() {
		var p domain.WordPair
		if err := rows.Scan(&p.Word1, &p.Word2, &p.Correct, &p.Incorrect, &p.Recency); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}

	return pairs, rows.Err()
}

// CountPairs returns the number of stored pairs
func (r *PairRepo) CountPairs() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM word_pairs`).Scan(&count)
	return count, err
}

// InsertPairs stores new pairs, skipping any word1 that already exists
func (r *PairRepo) InsertPairs(pairs []domain.WordPair) error {
	query := `
		INSERT INTO word_pairs (word1, word2, correct, incorrect, recency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (word1) DO NOTHING
	`
	return r.inTx(query, pairs, func(stmt *sql.Stmt, p domain.WordPair) error {
		_, err := stmt.Exec(p.Word1, p.Word2, p.Correct, p.Incorrect, p.Recency)
		return err
	})
}

// SaveStats writes the counters of the given pairs
func (r *PairRepo) SaveStats(pairs []domain.WordPair) error {
	query := `
		UPDATE word_pairs
		SET correct = $2, incorrect = $3, recency = $4, updated_at = NOW()
		WHERE word1 = $1
	`
	return r.inTx(query, pairs, func(stmt *sql.Stmt, p domain.WordPair) error {
		_, err := stmt.Exec(p.Word1, p.Correct, p.Incorrect, p.Recency)
		return err
	})
}

// inTx runs exec for every pair with a single prepared statement in one transaction
func (r *PairRepo) inTx(query string, pairs []domain.WordPair, exec func(*sql.Stmt, domain.WordPair) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range pairs {
		if err := exec(stmt, p); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write pair %q: %w", p.Word1, err)
		}
	}

	return tx.Commit()
}
