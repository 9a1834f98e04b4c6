package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"LedgerDrill/internal/model"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists problems and attempts to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log logrus.FieldLogger
}

var _ Recorder = (*SQLiteRecorder)(nil)

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log logrus.FieldLogger) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so the export command can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS problems (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			title      TEXT,
			params     TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_kind ON problems(kind)`,

		`CREATE TABLE IF NOT EXISTS attempts (
			id         TEXT PRIMARY KEY,
			problem_id TEXT NOT NULL,
			kind       TEXT NOT NULL,
			correct    INTEGER,
			incorrect  INTEGER,
			total      INTEGER,
			amount_cells   INTEGER NOT NULL DEFAULT 0,
			amount_correct INTEGER NOT NULL DEFAULT 0,
			checked_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_ts ON attempts(checked_at)`,

		`CREATE TABLE IF NOT EXISTS attempt_lines (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id TEXT NOT NULL,
			entry      TEXT,
			account    TEXT,
			side       TEXT,
			expected   TEXT,
			user_entry TEXT,
			status     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_lines_attempt ON attempt_lines(attempt_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordProblem(p *model.Problem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	params, err := json.Marshal(p.Params.Values)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	_, err = r.db.Exec(`INSERT OR REPLACE INTO problems
		(id, kind, title, params, created_at)
		VALUES (?,?,?,?,?)`,
		p.ID, string(p.Kind), p.Title, string(params), p.CreatedAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordAttempt(a *Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO attempts
		(id, problem_id, kind, correct, incorrect, total, amount_cells, amount_correct, checked_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		a.ID, a.ProblemID, string(a.Kind), a.Correct, a.Incorrect, a.Total,
		a.AmountCells, a.AmountCorrect, a.CheckedAt.Unix(),
	); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	for _, l := range a.Lines {
		expected := ""
		if l.Expected.Applicable {
			expected = l.Expected.Amount.StringFixed(2)
		}
		if _, err := tx.Exec(`INSERT INTO attempt_lines
			(attempt_id, entry, account, side, expected, user_entry, status)
			VALUES (?,?,?,?,?,?,?)`,
			a.ID, l.Line.Entry, l.Line.Account, string(l.Line.Side), expected, l.Entry, string(l.Status),
		); err != nil {
			return fmt.Errorf("insert attempt line: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) ListAttempts(limit int) ([]model.AttemptRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := `SELECT id, problem_id, kind, correct, incorrect, total, amount_cells, amount_correct, checked_at
		FROM attempts ORDER BY checked_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []model.AttemptRecord
	for rows.Next() {
		var (
			rec     model.AttemptRecord
			kind    string
			checked int64
		)
		if err := rows.Scan(&rec.ID, &rec.ProblemID, &kind, &rec.Correct, &rec.Incorrect, &rec.Total,
			&rec.AmountCells, &rec.AmountCorrect, &checked); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Kind = model.ScenarioKind(kind)
		rec.CheckedAt = time.Unix(checked, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
