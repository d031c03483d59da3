package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
	"github.com/expense-tracker/backend/internal/pkg/optional"
)

// UpdateProfileInput represents the input for a profile update. Unset fields are left unchanged.
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   optional.Value[string]
	Email  optional.Value[string]
}

// UpdateProfileOutput represents the output of a profile update.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase changes the caller's name or email.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the update. Emails are unique regardless of case.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if raw, ok := input.Name.Get(); ok {
		name, err := validation.RequiredText(nameField, raw)
		if err != nil {
			return nil, wrap(err)
		}
		user.Name = name
	}

	if raw, ok := input.Email.Get(); ok {
		email, err := validation.Email(emailField, raw)
		if err != nil {
			return nil, wrap(err)
		}
		owner, err := uc.userRepo.FindByEmail(ctx, email)
		switch {
		case err == nil && owner.ID != user.ID:
			return nil, emailTaken()
		case err != nil && !errors.Is(err, domainerror.ErrNotFound):
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = email
	}

	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrDuplicateKey):
			return nil, emailTaken()
		case errors.Is(err, domainerror.ErrNotFound):
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateProfileOutput{User: user}, nil
}
