package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peter9889466/midori-view-sub000/internal/domain"
)

type TradeRepository struct {
	pool   *pgxpool.Pool
	schema string
	table  string
}

func NewTradeRepository(pool *pgxpool.Pool, schema, table string) *TradeRepository {
	if schema == "" {
		schema = "trade"
	}
	if table == "" {
		table = "trade_record"
	}
	return &TradeRepository{pool: pool, schema: schema, table: table}
}

func (r *TradeRepository) qualified() string {
	return fmt.Sprintf("%s.%s", r.schema, r.table)
}

// EnsureSchema creates the schema and cache table if they do not exist yet.
func (r *TradeRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, r.schema)); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id           TEXT PRIMARY KEY,
			country      TEXT NOT NULL,
			product      TEXT NOT NULL,
			category     TEXT NOT NULL DEFAULT '',
			export_value BIGINT NOT NULL DEFAULT 0,
			import_value BIGINT NOT NULL DEFAULT 0,
			period       TEXT NOT NULL
		)`, r.qualified()))
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	_, err = r.pool.Exec(ctx, fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s_period_idx ON %s (period)`, r.table, r.qualified()))
	if err != nil {
		return fmt.Errorf("create period index: %w", err)
	}
	return nil
}

// Upsert inserts a record or, on id conflict, overwrites the export/import
// values only; country/product/category/period derive from the id and never
// change.
func (r *TradeRepository) Upsert(ctx context.Context, rec *domain.TradeRecord) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, country, product, category, export_value, import_value, period)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id)
		DO UPDATE SET
			export_value=EXCLUDED.export_value,
			import_value=EXCLUDED.import_value
		`, r.qualified()),
		rec.ID, rec.Country, rec.Product, rec.Category, rec.ExportValue, rec.ImportValue, rec.Period,
	)
	return err
}

// FindByPeriod returns every record for a period, largest combined volume
// first, so the ranking views can use the order as-is.
func (r *TradeRepository) FindByPeriod(ctx context.Context, period string) ([]domain.TradeRecord, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, country, product, category, export_value, import_value, period
		FROM %s
		WHERE period=$1
		ORDER BY export_value + import_value DESC
		`, r.qualified()), period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TradeRecord
	for rows.Next() {
		var rec domain.TradeRecord
		if err := rows.Scan(&rec.ID, &rec.Country, &rec.Product, &rec.Category,
			&rec.ExportValue, &rec.ImportValue, &rec.Period); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// RecentPeriods lists the most recently reported periods present in the store,
// used to warm the in-memory cache at startup.
func (r *TradeRepository) RecentPeriods(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT period FROM %s
		ORDER BY period DESC LIMIT $1
		`, r.qualified()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
