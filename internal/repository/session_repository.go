package repository

import (
	"context"
	"time"

	"github.com/denis-rim/node-auth/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, sessionToken string) (*domain.Session, error)
	Touch(ctx context.Context, sessionToken string, at time.Time) error
	DeleteByToken(ctx context.Context, sessionToken string) error
}
