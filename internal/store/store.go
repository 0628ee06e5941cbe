// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists validation reports and news batches in a
// local SQLite database. It is an opt-in convenience at the CLI layer;
// the evaluation core itself keeps no state across invocations.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/newslens/newslens/pkg/types"
)

const defaultMaxRows = 20

// Store manages the history SQLite database.
type Store struct {
	db      *sql.DB
	maxRows int
}

// Open opens or creates the history database at cfg.Path and ensures
// the schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = "newslens.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	s := &Store{db: db, maxRows: maxRows}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			url TEXT NOT NULL,
			domain_trust INTEGER NOT NULL,
			relevance INTEGER NOT NULL,
			fact_check INTEGER NOT NULL,
			bias INTEGER NOT NULL,
			citation INTEGER NOT NULL,
			composite REAL NOT NULL,
			stars INTEGER NOT NULL,
			explanation TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_query ON reports(query)`,
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			num INTEGER NOT NULL,
			link TEXT NOT NULL,
			title TEXT,
			summary TEXT,
			rating TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_query ON articles(query)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveReport records one validation report.
func (s *Store) SaveReport(r types.Report) error {
	_, err := s.db.Exec(
		`INSERT INTO reports
			(query, url, domain_trust, relevance, fact_check, bias, citation, composite, stars, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Query, r.URL,
		r.Signals.DomainTrust, r.Signals.Relevance, r.Signals.FactCheck, r.Signals.Bias, r.Signals.Citation,
		r.Composite, r.Stars, r.Explanation(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

// SaveBatch records the documents of one successful news batch.
func (s *Store) SaveBatch(query string, resp types.NewsResponse) error {
	if resp.Status != types.StatusSuccess {
		return fmt.Errorf("refusing to store %s batch", resp.Status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, doc := range resp.Results {
		if _, err := tx.Exec(
			`INSERT INTO articles (query, num, link, title, summary, rating, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			query, doc.Num, doc.Link, doc.Title, doc.Summary, doc.Rating, now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting article: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// ReportRow is one stored validation report.
type ReportRow struct {
	Query       string
	URL         string
	Signals     types.Signals
	Composite   float64
	Stars       int
	Explanation string
	CreatedAt   string
}

// RecentReports returns the newest stored reports, most recent first.
func (s *Store) RecentReports() ([]ReportRow, error) {
	rows, err := s.db.Query(
		`SELECT query, url, domain_trust, relevance, fact_check, bias, citation, composite, stars, explanation, created_at
		FROM reports ORDER BY rowid DESC LIMIT ?`, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		var r ReportRow
		if err := rows.Scan(
			&r.Query, &r.URL,
			&r.Signals.DomainTrust, &r.Signals.Relevance, &r.Signals.FactCheck, &r.Signals.Bias, &r.Signals.Citation,
			&r.Composite, &r.Stars, &r.Explanation, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ArticleRow is one stored news batch document.
type ArticleRow struct {
	Query     string
	Num       int
	Link      string
	Title     string
	Summary   string
	Rating    string
	CreatedAt string
}

// RecentArticles returns the newest stored batch documents, most
// recent first.
func (s *Store) RecentArticles() ([]ArticleRow, error) {
	rows, err := s.db.Query(
		`SELECT query, num, link, title, summary, rating, created_at
		FROM articles ORDER BY rowid DESC LIMIT ?`, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var out []ArticleRow
	for rows.Next() {
		var a ArticleRow
		if err := rows.Scan(&a.Query, &a.Num, &a.Link, &a.Title, &a.Summary, &a.Rating, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
