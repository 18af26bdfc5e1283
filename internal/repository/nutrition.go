package repository

import (
	"context"
	"time"

	"github.com/nutritrack/nutritrack/internal/models"
	"github.com/uptrace/bun"
)

// RecentNutritionDays is how many daily entries the progress view shows.
const RecentNutritionDays = 7

// Nutrition stores daily nutrition totals per user.
type Nutrition interface {
	Create(ctx context.Context, entry *models.NutritionEntry) (*models.NutritionEntry, error)
	ListRecent(ctx context.Context, userID int64) ([]models.NutritionEntry, error)
}

type nutrition struct {
	db bun.IDB
}

var _ Nutrition = (*nutrition)(nil)

func NewNutritionRepository(db bun.IDB) Nutrition {
	return &nutrition{db: db}
}

func (r *nutrition) Create(ctx context.Context, entry *models.NutritionEntry) (*models.NutritionEntry, error) {
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	if _, err := r.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return nil, translateInsertErr(err)
	}

	return entry, nil
}

// ListRecent returns the newest entries first, capped at RecentNutritionDays.
func (r *nutrition) ListRecent(ctx context.Context, userID int64) ([]models.NutritionEntry, error) {
	var out []models.NutritionEntry
	err := r.db.NewSelect().
		Model(&out).
		Where("?TableAlias.user_id = ?", userID).
		Order("date DESC").
		Limit(RecentNutritionDays).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "nutrition entries not found")
	}

	return out, nil
}
