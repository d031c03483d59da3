package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UserRepository stores the local record of identity-provider principals.
// Emails are compared after entity.NormalizeEmail; a clash is domainerror.ErrDuplicateKey.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// Provision inserts user unless a row with the same id exists. It reports
	// whether the row was created.
	Provision(ctx context.Context, user *entity.User) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update writes the profile fields.
	Update(ctx context.Context, user *entity.User) error
}
