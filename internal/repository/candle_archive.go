package repository

import (
	"context"
	"database/sql"
	"fmt"

	"SimMarket/internal/domain/models"
)

// ClickHouseArchive appends rollup candles to a MergeTree table. The archive
// is an audit trail: rows are never updated.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

func NewClickHouseArchive(db *sql.DB, table string) *ClickHouseArchive {
	return &ClickHouseArchive{db: db, table: table}
}

func (a *ClickHouseArchive) Archive(ctx context.Context, symbol string, c models.Candle) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (symbol, ts, open, high, low, close) VALUES (?, ?, ?, ?, ?, ?)",
		a.table,
	)
	_, err := a.db.ExecContext(ctx, q, symbol, c.Timestamp, c.Open, c.High, c.Low, c.Close)
	if err != nil {
		return fmt.Errorf("archive %s: %w", symbol, err)
	}
	return nil
}

func (a *ClickHouseArchive) Close() error {
	return nil // pool owned by pkg/clickhouse
}
