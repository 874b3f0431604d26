// Package store provides the append-only message log on Postgres. The store
// owns serial assignment: a record's serial is its append index, and the
// stored payload is the persisted wire form "<serial>:<record>".
package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/chainrelay/internal/message"
)

type LogStore struct {
	db *pgxpool.Pool
}

func NewLogStore(connString string) (*LogStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &LogStore{db: pool}, nil
}

func (s *LogStore) Close() {
	s.db.Close()
}

// EnsureSchema creates the log table if it does not exist yet.
func (s *LogStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		"CREATE TABLE IF NOT EXISTS log_entries (serial BIGINT PRIMARY KEY, payload TEXT NOT NULL)")
	if err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Append assigns the next serial and stores the record in its persisted wire
// form. The serializable transaction keeps appends effectively single-writer.
func (s *LogStore) Append(ctx context.Context, record string) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return 0, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var serial uint64
	err = tx.QueryRow(ctx, "SELECT COALESCE(MAX(serial)+1, 0) FROM log_entries").Scan(&serial)
	if err != nil {
		return 0, fmt.Errorf("serial query failed: %w", err)
	}

	payload := strconv.FormatUint(serial, 10) + ":" + record
	_, err = tx.Exec(ctx, "INSERT INTO log_entries (serial, payload) VALUES ($1, $2)", serial, payload)
	if err != nil {
		return 0, fmt.Errorf("append failed: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("tx commit failed: %w", err)
	}
	return serial, nil
}

// Range returns up to limit stored payloads starting at the given serial, in
// log order.
func (s *LogStore) Range(ctx context.Context, from uint64, limit int) ([]string, error) {
	rows, err := s.db.Query(ctx,
		"SELECT payload FROM log_entries WHERE serial >= $1 ORDER BY serial LIMIT $2", from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payloads []string
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, rows.Err()
}

// Len returns the number of entries in the log.
func (s *LogStore) Len(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM log_entries").Scan(&count)
	return count, err
}

// EnsureGenesis appends the encoded genesis block when the log is empty, so
// that serial 0 always exists.
func (s *LogStore) EnsureGenesis(ctx context.Context) error {
	count, err := s.Len(ctx)
	if err != nil {
		return fmt.Errorf("genesis check failed: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err = s.Append(ctx, message.Genesis().String())
	return err
}
