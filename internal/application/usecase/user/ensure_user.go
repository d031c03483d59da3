package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
)

// EnsureUserInput carries the identity asserted by a verified token.
type EnsureUserInput struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// EnsureUserOutput represents the output of provisioning.
type EnsureUserOutput struct {
	User    *entity.User
	Created bool
}

// EnsureUserUseCase creates the user row the first time a principal is seen.
type EnsureUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewEnsureUserUseCase creates a new EnsureUserUseCase instance.
func NewEnsureUserUseCase(userRepo adapter.UserRepository) *EnsureUserUseCase {
	return &EnsureUserUseCase{
		userRepo: userRepo,
	}
}

// Execute returns the stored user, creating it if needed. Concurrent first
// requests for the same principal converge on one row.
func (uc *EnsureUserUseCase) Execute(ctx context.Context, input EnsureUserInput) (*EnsureUserOutput, error) {
	existing, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err == nil {
		return &EnsureUserOutput{User: existing}, nil
	}
	if !errors.Is(err, domainerror.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	email, err := validation.Email(emailField, input.Email)
	if err != nil {
		return nil, wrap(err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	name, err = validation.RequiredText(nameField, name)
	if err != nil {
		return nil, wrap(err)
	}

	user := entity.NewUser(input.UserID, email, name)
	created, err := uc.userRepo.Provision(ctx, user)
	if err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if !created {
		// Another request for the same principal inserted the row first.
		existing, err := uc.userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load provisioned user: %w", err)
		}
		return &EnsureUserOutput{User: existing}, nil
	}

	slog.InfoContext(ctx, "Provisioned user", "user_id", user.ID)
	return &EnsureUserOutput{User: user, Created: true}, nil
}
