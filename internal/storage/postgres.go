// Package storage persists generated wordlists and evaluation history in
// postgres, and raw corpora in mongo.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/codemix-nlp/codemix/config"
	"github.com/codemix-nlp/codemix/internal/eval"
	"github.com/codemix-nlp/codemix/internal/freq"
)

// ErrNotFound marks lookups that matched nothing.
var ErrNotFound = errors.New("not found")

type DB struct {
	conn *sqlx.DB
}

func NewDBConnection(cfg *config.PostgresConfig) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
	if cfg.SSL {
		dsn += " sslmode=require"
	} else {
		dsn += " sslmode=disable"
	}
	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db connection error: %w", err)
	}
	return &DB{
		conn: conn,
	}, nil
}

// Init creates the tables if they do not exist yet.
func (d *DB) Init() error {
	if _, err := d.conn.Exec(createWordlistTable); err != nil {
		return fmt.Errorf("failed to create wordlist table: %w", err)
	}
	if _, err := d.conn.Exec(createEvalRunsTable); err != nil {
		return fmt.Errorf("failed to create eval runs table: %w", err)
	}
	return nil
}

// SaveWordlist replaces the stored list for a language with entries, in
// rank order. The replace and inserts run in one transaction so readers
// never see a half-written list.
func (d *DB) SaveWordlist(lang string, entries []freq.Entry) error {
	tx, err := d.conn.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin wordlist transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteWordlist, lang); err != nil {
		return fmt.Errorf("failed to clear wordlist for %q: %w", lang, err)
	}

	stmt, err := tx.Preparex(insertWordlistEntry)
	if err != nil {
		return fmt.Errorf("failed to prepare wordlist insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(lang, i+1, e.Word, e.Count); err != nil {
			return fmt.Errorf("failed to insert word %q at rank %d: %w", e.Word, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wordlist: %w", err)
	}
	return nil
}

// LoadWordlist returns the stored list for a language in rank order,
// capped at limit when limit is positive. A language with no stored list
// yields ErrNotFound.
func (d *DB) LoadWordlist(lang string, limit int) ([]freq.Entry, error) {
	var entries []freq.Entry
	var err error
	if limit > 0 {
		err = d.conn.Select(&entries, selectWordlistLimit, lang, limit)
	} else {
		err = d.conn.Select(&entries, selectWordlist, lang)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wordlist for %q: %w", lang, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("wordlist %q: %w", lang, ErrNotFound)
	}
	return entries, nil
}

func (d *DB) CountWordlist(lang string) (int, error) {
	var count int
	if err := d.conn.Get(&count, countWordlist, lang); err != nil {
		return 0, fmt.Errorf("failed to count wordlist for %q: %w", lang, err)
	}
	return count, nil
}

// EvalRun is one persisted evaluation result.
type EvalRun struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	GoldPath    string    `db:"gold_path" json:"gold_path"`
	PredPath    string    `db:"pred_path" json:"pred_path"`
	Accuracy    float64   `db:"accuracy" json:"accuracy"`
	Hits        int       `db:"hits" json:"hits"`
	Misses      int       `db:"misses" json:"misses"`
	OOVRate     float64   `db:"oov_rate" json:"oov_rate"`
	OOVAccuracy float64   `db:"oov_accuracy" json:"oov_accuracy"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// RecordEvalRun stores the headline numbers of res and returns the row id.
func (d *DB) RecordEvalRun(name, goldPath, predPath string, res *eval.Result) (int64, error) {
	var id int64
	err := d.conn.QueryRowx(insertEvalRun,
		name, goldPath, predPath,
		res.Accuracy, res.Hits, res.Misses, res.OOVRate, res.OOVAccuracy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to record eval run %q: %w", name, err)
	}
	return id, nil
}

// ListEvalRuns returns the most recent runs, newest first.
func (d *DB) ListEvalRuns(limit int) ([]EvalRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []EvalRun
	if err := d.conn.Select(&runs, selectEvalRuns, limit); err != nil {
		return nil, fmt.Errorf("failed to list eval runs: %w", err)
	}
	return runs, nil
}

func (d *DB) Close() error {
	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("failed to close db connection: %w", err)
	}
	return nil
}
