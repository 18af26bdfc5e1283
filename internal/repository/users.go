// Package repository implements persistence over bun for users, meals, and
// nutrition entries. The storage engine is the sole arbiter of uniqueness;
// repositories translate its conflict signals into structured errors.
package repository

import (
	"context"

	"github.com/nutritrack/nutritrack/internal/models"
	"github.com/uptrace/bun"
)

// Users is the credential store plus the profile mutations onboarding needs.
type Users interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)
}

type users struct {
	db bun.IDB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns the bun-backed Users repository.
func NewUsersRepository(db bun.IDB) Users {
	return &users{db: db}
}

func (r *users) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.EnsureProfileDefaults()

	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, translateInsertErr(err)
	}

	return user, nil
}

func (r *users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return user, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return user, nil
}

func (r *users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return user, nil
}

// UpdateProfile writes the onboarding profile fields. Identity columns and
// the password hash are left untouched.
func (r *users) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	_, err := r.db.NewUpdate().
		Model(user).
		Column("age", "gender", "weight", "height", "activity_level", "dietary_preferences", "goals").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, translateInsertErr(err)
	}

	return r.GetByID(ctx, user.ID)
}
