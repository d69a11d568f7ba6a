package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements PatternStore on PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ PatternStore = (*Postgres)(nil)

// NewPostgres opens a connection pool and verifies connectivity.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (s *Postgres) Close() {
	s.pool.Close()
}

// EnsureSchema creates the sandwich_patterns table when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS sandwich_patterns (
			id            BIGSERIAL PRIMARY KEY,
			token         TEXT NOT NULL,
			attacker      TEXT NOT NULL,
			victim        TEXT NOT NULL DEFAULT '',
			slot          BIGINT NOT NULL,
			block_time    BIGINT NOT NULL,
			create_sig    TEXT NOT NULL,
			swap_in_sig   TEXT NOT NULL,
			swap_out_sig  TEXT NOT NULL,
			token_profit  BIGINT NOT NULL,
			sol_profit    DOUBLE PRECISION NOT NULL,
			tip_lamports  BIGINT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (create_sig, swap_in_sig, swap_out_sig)
		);
		CREATE INDEX IF NOT EXISTS sandwich_patterns_slot_idx ON sandwich_patterns (slot);
	`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save inserts records atomically. Re-observed patterns (same three
// signatures) are skipped, so re-scanning a block is idempotent.
func (s *Postgres) Save(ctx context.Context, records []PatternRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO sandwich_patterns (
			token, attacker, victim, slot, block_time,
			create_sig, swap_in_sig, swap_out_sig,
			token_profit, sol_profit, tip_lamports
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (create_sig, swap_in_sig, swap_out_sig) DO NOTHING
	`

	for _, r := range records {
		_, err := tx.Exec(ctx, query,
			r.Token,
			r.Attacker,
			r.Victim,
			int64(r.Slot),
			r.BlockTime,
			r.CreateSignature,
			r.SwapInSignature,
			r.SwapOutSignature,
			r.TokenProfit,
			r.SolProfit,
			int64(r.TipLamports),
		)
		if err != nil {
			return fmt.Errorf("insert pattern: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// BySlot retrieves the patterns detected at one slot in detection order.
func (s *Postgres) BySlot(ctx context.Context, slot uint64) ([]PatternRecord, error) {
	const query = `
		SELECT token, attacker, victim, slot, block_time,
		       create_sig, swap_in_sig, swap_out_sig,
		       token_profit, sol_profit, tip_lamports
		FROM sandwich_patterns
		WHERE slot = $1
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query, int64(slot))
	if err != nil {
		return nil, fmt.Errorf("query patterns by slot: %w", err)
	}
	defer rows.Close()

	var out []PatternRecord
	for rows.Next() {
		var r PatternRecord
		var slotI64, tipI64 int64
		if err := rows.Scan(
			&r.Token,
			&r.Attacker,
			&r.Victim,
			&slotI64,
			&r.BlockTime,
			&r.CreateSignature,
			&r.SwapInSignature,
			&r.SwapOutSignature,
			&r.TokenProfit,
			&r.SolProfit,
			&tipI64,
		); err != nil {
			return nil, fmt.Errorf("scan pattern row: %w", err)
		}
		r.Slot = uint64(slotI64)
		r.TipLamports = uint64(tipI64)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pattern rows: %w", err)
	}
	return out, nil
}
