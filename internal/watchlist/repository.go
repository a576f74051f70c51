// Package watchlist persists the user's tracked tickers in PostgreSQL.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickerpulse/backend/internal/contracts"
)

// Entry is one watched ticker.
type Entry struct {
	Ticker  string    `json:"ticker"`
	AddedAt time.Time `json:"added_at"`
}

// Repository handles watchlist persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Schema creates the watchlist table if it does not exist.
func (r *Repository) Schema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS watchlist (
			ticker   TEXT PRIMARY KEY,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create watchlist table: %w", err)
	}
	return nil
}

// Add inserts a ticker. Idempotent: re-adding keeps the original
// added_at timestamp.
func (r *Repository) Add(ctx context.Context, ticker string) (*Entry, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, fmt.Errorf("watchlist add: empty ticker")
	}

	query := `
		INSERT INTO watchlist (ticker, added_at)
		VALUES ($1, NOW())
		ON CONFLICT (ticker) DO UPDATE SET ticker = EXCLUDED.ticker
		RETURNING ticker, added_at
	`

	var entry Entry
	if err := r.db.QueryRow(ctx, query, symbol).Scan(&entry.Ticker, &entry.AddedAt); err != nil {
		return nil, fmt.Errorf("insert watchlist entry: %w", err)
	}

	return &entry, nil
}

// Remove deletes a ticker. Removing an unknown ticker is ErrNotFound.
func (r *Repository) Remove(ctx context.Context, ticker string) error {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	tag, err := r.db.Exec(ctx, `DELETE FROM watchlist WHERE ticker = $1`, symbol)
	if err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("watchlist entry %s: %w", symbol, contracts.ErrNotFound)
	}

	return nil
}

// List returns all watched tickers, oldest first.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT ticker, added_at FROM watchlist ORDER BY added_at`)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Ticker, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}

	return entries, nil
}

// Get looks up a single entry.
func (r *Repository) Get(ctx context.Context, ticker string) (*Entry, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	var entry Entry
	err := r.db.QueryRow(ctx, `SELECT ticker, added_at FROM watchlist WHERE ticker = $1`, symbol).
		Scan(&entry.Ticker, &entry.AddedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("watchlist entry %s: %w", symbol, contracts.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query watchlist entry: %w", err)
	}

	return &entry, nil
}
