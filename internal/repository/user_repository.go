package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/denis-rim/node-auth/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAuthenticatorSecret(ctx context.Context, id uuid.UUID, secret string) error
	MarkEmailVerified(ctx context.Context, email string) error
}
