package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/domain/repository"
	"github.com/provider-discovery/internal/pkg/errors"
	"go.uber.org/zap"
)

// LimitProvidersHard - страховочный лимит для запросов без явного cap
const LimitProvidersHard = 5000

type providerRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProviderRepository(db *DB) repository.ProviderRepository {
	return &providerRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// buildCategoryClause собирает SQL-условие по нормализованному фильтру
// категории. Возвращает пустую строку, если фильтр не задан.
func buildCategoryClause(match domain.CategoryMatch, argIdx int) (string, []interface{}) {
	switch {
	case match.MainType != "":
		return fmt.Sprintf(" AND main_type = $%d", argIdx), []interface{}{string(match.MainType)}
	case match.SubType != "":
		return fmt.Sprintf(" AND sub_type = $%d", argIdx), []interface{}{match.SubType}
	case match.Substring != "":
		return fmt.Sprintf(" AND sub_type ILIKE $%d", argIdx), []interface{}{"%" + match.Substring + "%"}
	}
	return "", nil
}

func (r *providerRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	query := `
		SELECT
			id, name, main_type, sub_type, tags, lat, lon,
			opening_fee, price_per_km, rating, rating_count,
			created_at, updated_at
		FROM providers
		WHERE id = $1
	`

	var p domain.Provider
	var tags pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.MainType, &p.SubType, &tags,
		&p.Lat, &p.Lon, &p.OpeningFee, &p.PricePerKm,
		&p.Rating, &p.RatingCount, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrProviderNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get provider by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrStoreUnavailable
	}

	p.Tags = tags
	return &p, nil
}

func (r *providerRepository) GetNearby(
	ctx context.Context,
	lat, lon, radiusKm float64,
	match domain.CategoryMatch,
	limit int,
) ([]*domain.Provider, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT
			id, name, main_type, sub_type, lat, lon,
			opening_fee, price_per_km, rating,
			ST_Distance(geometry::geography, point.geom) AS distance
		FROM providers, point
		WHERE ST_DWithin(geometry::geography, point.geom, $3)
	`

	// Convert radius from km to meters
	radiusMeters := radiusKm * 1000
	args := []interface{}{lon, lat, radiusMeters}
	argIdx := 4

	if clause, clauseArgs := buildCategoryClause(match, argIdx); clause != "" {
		query += clause
		args = append(args, clauseArgs...)
		argIdx++
	}

	if limit <= 0 || limit > LimitProvidersHard {
		limit = LimitProvidersHard
	}
	query += fmt.Sprintf(" ORDER BY distance, id LIMIT $%d", argIdx)
	args = append(args, limit)

	return r.queryProviders(ctx, query, args)
}

func (r *providerRepository) GetNearbyGrouped(
	ctx context.Context,
	lat, lon, radiusKm float64,
	match domain.CategoryMatch,
	precision int,
) ([]*domain.Provider, error) {
	// Одна строка на пару (main_type, ячейка сетки): DISTINCT ON с сортировкой
	// по расстоянию внутри группы оставляет ближайшего представителя
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT DISTINCT ON (main_type, round(lat::numeric, $4), round(lon::numeric, $4))
			id, name, main_type, sub_type, lat, lon,
			opening_fee, price_per_km, rating,
			ST_Distance(geometry::geography, point.geom) AS distance
		FROM providers, point
		WHERE ST_DWithin(geometry::geography, point.geom, $3)
	`

	radiusMeters := radiusKm * 1000
	args := []interface{}{lon, lat, radiusMeters, precision}
	argIdx := 5

	if clause, clauseArgs := buildCategoryClause(match, argIdx); clause != "" {
		query += clause
		args = append(args, clauseArgs...)
	}

	query += ` ORDER BY main_type, round(lat::numeric, $4), round(lon::numeric, $4), distance, id`

	return r.queryProviders(ctx, query, args)
}

func (r *providerRepository) GetAll(
	ctx context.Context,
	match domain.CategoryMatch,
) ([]*domain.Provider, error) {
	query := `
		SELECT
			id, name, main_type, sub_type, lat, lon,
			opening_fee, price_per_km, rating,
			0::float8 AS distance
		FROM providers
		WHERE true
	`

	var args []interface{}
	if clause, clauseArgs := buildCategoryClause(match, 1); clause != "" {
		query += clause
		args = append(args, clauseArgs...)
	}

	query += " ORDER BY id"

	return r.queryProviders(ctx, query, args)
}

func (r *providerRepository) queryProviders(
	ctx context.Context,
	query string,
	args []interface{},
) ([]*domain.Provider, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query providers", zap.Error(err))
		return nil, errors.ErrStoreUnavailable
	}
	defer rows.Close()

	var providers []*domain.Provider
	for rows.Next() {
		var p domain.Provider
		var distance float64

		err := rows.Scan(
			&p.ID, &p.Name, &p.MainType, &p.SubType, &p.Lat, &p.Lon,
			&p.OpeningFee, &p.PricePerKm, &p.Rating, &distance,
		)
		if err != nil {
			r.logger.Error("Failed to scan provider", zap.Error(err))
			continue
		}

		providers = append(providers, &p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Provider rows iteration failed", zap.Error(err))
		return nil, errors.ErrStoreUnavailable
	}

	return providers, nil
}
