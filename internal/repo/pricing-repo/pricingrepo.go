package pricingrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetActive(ctx context.Context) ([]domain.PricingEntry, error) {
	query := `
        SELECT id, operation, cost, COALESCE(description, ''), COALESCE(display_name, ''), is_image_model, display_order, is_active
        FROM credit_pricing
        WHERE is_active = true
        ORDER BY display_order ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't fetch active pricing", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PricingEntry
	for rows.Next() {
		var e domain.PricingEntry
		err := rows.Scan(&e.ID, &e.Operation, &e.Cost, &e.Description, &e.DisplayName, &e.IsImageModel, &e.DisplayOrder, &e.IsActive)
		if err != nil {
			zap.L().Error("can't scan pricing row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
