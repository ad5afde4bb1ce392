package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pranithapadala/FinWell/internal/core"
	"github.com/pranithapadala/FinWell/internal/goals"

	_ "modernc.org/sqlite"
)

// goalsStateKey is the app_state row holding the serialized goal collection.
const goalsStateKey = "finwell_goals_v1"

// ErrNotFound is returned when a transaction id does not exist.
var ErrNotFound = errors.New("transaction not found")

// SQLiteRepository persists transactions and the savings-goal collection.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertTransaction stores one validated record.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, tx core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, date, category, type, amount_cents, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Date, tx.Category, string(tx.Type), tx.Amount.Cents, tx.Note)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"date", tx.Date,
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)

	return nil
}

// DeleteTransaction removes a record by id. A missing id yields ErrNotFound.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTransaction retrieves a single record by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, category, type, amount_cents, note FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// ListMonth returns the records of one calendar month in insertion order.
func (r *SQLiteRepository) ListMonth(ctx context.Context, month core.MonthKey) ([]core.Transaction, error) {
	from := month.DatePrefix() + "01"
	to := month.Next().DatePrefix() + "01"

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, category, type, amount_cents, note
		 FROM transactions
		 WHERE date >= ? AND date < ?
		 ORDER BY rowid`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list month %s: %w", month, err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list month %s: %w", month, err)
	}
	return txs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var tx core.Transaction
	var txType string
	var cents int64
	if err := row.Scan(&tx.ID, &tx.Date, &tx.Category, &txType, &cents, &tx.Note); err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.TxType(txType)
	tx.Amount = core.Money{Cents: cents}
	return tx, nil
}

// LoadGoals reads the goal collection from the app_state row. A missing or
// unreadable row degrades to an empty collection so the tracker always starts.
func (r *SQLiteRepository) LoadGoals(ctx context.Context) ([]goals.SavingsGoal, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, goalsStateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}

	var collection []goals.SavingsGoal
	if err := json.Unmarshal([]byte(raw), &collection); err != nil {
		slog.WarnContext(ctx, "Stored goal state is unreadable, starting empty", "error", err)
		return nil, nil
	}
	return collection, nil
}

// SaveGoals writes the full goal collection back to the app_state row.
func (r *SQLiteRepository) SaveGoals(ctx context.Context, collection []goals.SavingsGoal) error {
	raw, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		goalsStateKey, string(raw))
	if err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}
