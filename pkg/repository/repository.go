package repository

import (
	"context"

	"github.com/garnizeh/skilltrack/pkg/models"
)

// Repository interfaces for domain entities. These are the public
// contracts consumers should depend on; concrete implementations live
// under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

type EntryRepo interface {
	CreateEntry(ctx context.Context, e *models.Entry) (string, error)
	ListEntries(ctx context.Context) ([]models.Entry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Entry, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type OptionRepo interface {
	CreateOption(ctx context.Context, o *models.Option) (string, error)
	GetOption(ctx context.Context, id string) (*models.Option, error)
	ListOptions(ctx context.Context) ([]models.Option, error)
	UpdateOption(ctx context.Context, o *models.Option) error
	DeleteOption(ctx context.Context, id string) error
}

type ResetRepo interface {
	CreateReset(ctx context.Context, r *models.PasswordReset) (int64, error)
	GetActiveReset(ctx context.Context, userID string, now int64) (*models.PasswordReset, error)
	ConsumeReset(ctx context.Context, id int64) error
}
