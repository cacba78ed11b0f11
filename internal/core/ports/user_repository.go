package ports

import (
	"context"
	"time"

	"github.com/alertaclimatica/news-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// TouchUltimoAcceso records a successful login timestamp.
	TouchUltimoAcceso(ctx context.Context, id string, ts time.Time) error
}
