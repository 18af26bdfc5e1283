package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// Manager exposes all repositories plus transaction support.
type Manager interface {
	Users() Users
	Meals() Meals
	Nutrition() Nutrition
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db        *bun.DB
	users     Users
	meals     Meals
	nutrition Nutrition
}

// NewManager wires every repository over the shared bun DB.
func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:        db,
		users:     NewUsersRepository(db),
		meals:     NewMealsRepository(db),
		nutrition: NewNutritionRepository(db),
	}
}

func (m *mngr) Users() Users         { return m.users }
func (m *mngr) Meals() Meals         { return m.meals }
func (m *mngr) Nutrition() Nutrition { return m.nutrition }

func (m *mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}
	if m.meals == nil {
		return errors.New("repository meals should be initialized")
	}
	if m.nutrition == nil {
		return errors.New("repository nutrition should be initialized")
	}
	return nil
}

func (m *mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m *mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}
