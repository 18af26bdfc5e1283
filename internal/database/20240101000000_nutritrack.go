package database

import (
	"context"

	"github.com/nutritrack/nutritrack/internal/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []any{
			(*models.User)(nil),
			(*models.Meal)(nil),
			(*models.NutritionEntry)(nil),
		}
		for _, model := range tables {
			if _, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				WithForeignKeys().
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []any{
			(*models.NutritionEntry)(nil),
			(*models.Meal)(nil),
			(*models.User)(nil),
		}
		for _, model := range tables {
			if _, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
