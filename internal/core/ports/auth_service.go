package ports

import (
	"context"

	"github.com/alertaclimatica/news-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Nombre   string
	Email    string
	Password string
	Rol      string // empty = editor
}

// AuthService implements registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// TokenService issues and verifies stateless bearer tokens. Verification is
// purely cryptographic: there is no revocation list, expiry is the only
// termination mechanism.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the embedded user id, or ErrTokenMalformed /
	// ErrTokenInvalid / ErrTokenExpired.
	Verify(token string) (string, error)
}
