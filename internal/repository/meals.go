package repository

import (
	"context"
	"time"

	"github.com/nutritrack/nutritrack/internal/models"
	"github.com/uptrace/bun"
)

// Meals stores logged and planned meals per user.
type Meals interface {
	Create(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	ListForDay(ctx context.Context, userID int64, day time.Time) ([]models.Meal, error)
}

type meals struct {
	db bun.IDB
}

var _ Meals = (*meals)(nil)

func NewMealsRepository(db bun.IDB) Meals {
	return &meals{db: db}
}

func (r *meals) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if meal.Date.IsZero() {
		meal.Date = time.Now()
	}

	if _, err := r.db.NewInsert().Model(meal).Exec(ctx); err != nil {
		return nil, translateInsertErr(err)
	}

	return meal, nil
}

// ListForDay returns the user's meals whose date falls on the same calendar
// day as the given time, in the server's timezone.
func (r *meals) ListForDay(ctx context.Context, userID int64, day time.Time) ([]models.Meal, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	// AddDate follows the calendar, so the window stays correct across DST
	// transitions where a day is not 24 hours long.
	end := start.AddDate(0, 0, 1)

	var out []models.Meal
	err := r.db.NewSelect().
		Model(&out).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.date >= ?", start).
		Where("?TableAlias.date < ?", end).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "meals not found")
	}

	return out, nil
}
