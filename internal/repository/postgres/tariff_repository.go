package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/domain/repository"
	"github.com/provider-discovery/internal/pkg/errors"
	"go.uber.org/zap"
)

type tariffRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTariffRepository(db *DB) repository.TariffRepository {
	return &tariffRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *tariffRepository) GetByMainType(ctx context.Context, mainType domain.MainType) (*domain.Tariff, error) {
	query := `
		SELECT main_type, opening_fee, price_per_km
		FROM tariffs
		WHERE main_type = $1
	`

	var t domain.Tariff
	err := r.db.QueryRowContext(ctx, query, string(mainType)).Scan(
		&t.MainType, &t.OpeningFee, &t.PricePerKm,
	)

	if err == sql.ErrNoRows {
		return nil, nil // no category tariff, caller falls back to defaults
	}
	if err != nil {
		r.logger.Error("Failed to get tariff", zap.String("main_type", string(mainType)), zap.Error(err))
		return nil, errors.ErrStoreUnavailable
	}

	return &t, nil
}

func (r *tariffRepository) GetAll(ctx context.Context) (map[domain.MainType]domain.Tariff, error) {
	query := `
		SELECT main_type, opening_fee, price_per_km
		FROM tariffs
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get tariffs", zap.Error(err))
		return nil, errors.ErrStoreUnavailable
	}
	defer rows.Close()

	tariffs := make(map[domain.MainType]domain.Tariff)
	for rows.Next() {
		var t domain.Tariff
		if err := rows.Scan(&t.MainType, &t.OpeningFee, &t.PricePerKm); err != nil {
			r.logger.Error("Failed to scan tariff", zap.Error(err))
			continue
		}
		tariffs[t.MainType] = t
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Tariff rows iteration failed", zap.Error(err))
		return nil, errors.ErrStoreUnavailable
	}

	return tariffs, nil
}
