package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS catalog_items (
	seq        BIGSERIAL,
	id         BIGINT PRIMARY KEY,
	brand      TEXT NOT NULL,
	name       TEXT NOT NULL,
	price      DOUBLE PRECISION NOT NULL CHECK (price >= 0),
	category   TEXT NOT NULL,
	specs      JSONB NOT NULL DEFAULT '{}',
	scores     JSONB NOT NULL,
	source     TEXT NOT NULL DEFAULT 'catalog',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the catalog table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate catalog: %w", err)
	}
	return nil
}

// Seed inserts the given items, skipping ids that already exist, inside one
// transaction so the seed order is preserved.
func (s *PostgresStore) Seed(ctx context.Context, items []Item) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range items {
		it := items[i]
		if it.Source == "" {
			it.Source = SourceCatalog
		}
		specsJSON, scoresJSON, err := marshalItem(&it)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO catalog_items (id, brand, name, price, category, specs, scores, source)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			it.ID, it.Brand, it.Name, it.Price, it.Category, specsJSON, scoresJSON, it.Source,
		)
		if err != nil {
			return fmt.Errorf("seed item %d: %w", it.ID, err)
		}
	}
	return tx.Commit(ctx)
}

const itemColumns = `id, brand, name, price, category, specs, scores, source`

func (s *PostgresStore) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+itemColumns+` FROM catalog_items ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *PostgresStore) GetItem(ctx context.Context, id int64) (*Item, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM catalog_items WHERE id = $1`, id)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get item %d: %w", id, ErrItemNotFound)
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// AppendItem inserts item at the end of the catalog. A conflicting or unset id
// is replaced by one above the current maximum.
func (s *PostgresStore) AppendItem(ctx context.Context, item *Item) error {
	specsJSON, scoresJSON, err := marshalItem(item)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO catalog_items (id, brand, name, price, category, specs, scores, source)
		SELECT CASE
			WHEN $1::bigint > 0 AND NOT EXISTS (SELECT 1 FROM catalog_items WHERE id = $1::bigint) THEN $1::bigint
			ELSE GREATEST($1::bigint, COALESCE((SELECT MAX(id) FROM catalog_items), 0)) + 1
		END, $2, $3, $4, $5, $6, $7, $8
		RETURNING id`,
		item.ID, item.Brand, item.Name, item.Price, item.Category, specsJSON, scoresJSON, item.Source,
	).Scan(&item.ID)
}

func marshalItem(it *Item) ([]byte, []byte, error) {
	specs := it.Specs
	if specs == nil {
		specs = map[string]string{}
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal specs: %w", err)
	}
	scoresJSON, err := json.Marshal(it.Scores)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal scores: %w", err)
	}
	return specsJSON, scoresJSON, nil
}

func scanItem(row pgx.Row) (*Item, error) {
	it := &Item{}
	var specsJSON, scoresJSON []byte
	if err := row.Scan(&it.ID, &it.Brand, &it.Name, &it.Price, &it.Category, &specsJSON, &scoresJSON, &it.Source); err != nil {
		return nil, err
	}
	if specsJSON != nil {
		if err := json.Unmarshal(specsJSON, &it.Specs); err != nil {
			return nil, fmt.Errorf("decode specs for item %d: %w", it.ID, err)
		}
	}
	if err := json.Unmarshal(scoresJSON, &it.Scores); err != nil {
		return nil, fmt.Errorf("decode scores for item %d: %w", it.ID, err)
	}
	return it, nil
}
