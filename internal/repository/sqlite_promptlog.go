package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"spica/internal/db"
	"spica/internal/domain"
)

// SQLitePromptLogRepo implements PromptLogRepo using a SQLite database.
type SQLitePromptLogRepo struct {
	db db.DBTX
}

// NewSQLitePromptLogRepo creates a new SQLitePromptLogRepo.
func NewSQLitePromptLogRepo(dbtx db.DBTX) *SQLitePromptLogRepo {
	return &SQLitePromptLogRepo{db: dbtx}
}

func (r *SQLitePromptLogRepo) Create(ctx context.Context, rec *domain.PromptRecord) error {
	query := `INSERT INTO prompt_log (id, task, user_input, model, success, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Task,
		rec.UserInput,
		rec.Model,
		boolToInt(rec.Success),
		rec.LatencyMs,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting prompt record: %w", err)
	}
	return nil
}

func (r *SQLitePromptLogRepo) GetByID(ctx context.Context, id string) (*domain.PromptRecord, error) {
	query := `SELECT id, task, user_input, model, success, latency_ms, created_at
		FROM prompt_log WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	rec, err := scanPromptRecord(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("prompt record: %w", ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLitePromptLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PromptRecord, error) {
	query := `SELECT id, task, user_input, model, success, latency_ms, created_at
		FROM prompt_log ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent prompts: %w", err)
	}
	defer rows.Close()

	var records []*domain.PromptRecord
	for rows.Next() {
		rec, err := scanPromptRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompt records: %w", err)
	}
	return records, nil
}

func (r *SQLitePromptLogRepo) CountByTask(ctx context.Context) (map[string]int, error) {
	query := `SELECT task, COUNT(*) FROM prompt_log GROUP BY task`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting prompts by task: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var task string
		var n int
		if err := rows.Scan(&task, &n); err != nil {
			return nil, fmt.Errorf("scanning task count: %w", err)
		}
		counts[task] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task counts: %w", err)
	}
	return counts, nil
}

// scanPromptRecord scans one row using the given scan function, so it works
// for both *sql.Row and *sql.Rows.
func scanPromptRecord(scan func(dest ...any) error) (*domain.PromptRecord, error) {
	var rec domain.PromptRecord
	var success int
	var createdAtStr string

	if err := scan(&rec.ID, &rec.Task, &rec.UserInput, &rec.Model, &success, &rec.LatencyMs, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning prompt record: %w", err)
	}

	rec.Success = intToBool(success)
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	rec.CreatedAt = createdAt
	return &rec, nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
