package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies access tokens.
type TokenService interface {
	Issue(u *user.User) (string, error)
	Verify(tokenString string) (*Claims, error)
	ExpiryOf(tokenString string) (time.Time, error)
}

// PasswordHasher abstracts the one-way password hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(password, hash string) bool
}

// UserRepository is the subset of the credential store the auth flows need.
type UserRepository interface {
	Save(ctx context.Context, u *user.User) error
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*user.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Claims represents JWT token claims. The subject is the username.
type Claims struct {
	Role user.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Username() string {
	return c.Subject
}

// AuthResponse is returned by register and login. ExpiresAt is epoch milliseconds.
type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   int64     `json:"expiresAt"`
	User        user.View `json:"user"`
}

// Principal is the authenticated identity attached to each request.
type Principal struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         user.Role `json:"role"`
}

func NewPrincipal(u *user.User) *Principal {
	return &Principal{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}

// Authorities lists granted authorities in the ROLE_<name> form.
func (p *Principal) Authorities() []string {
	return []string{"ROLE_" + string(p.Role)}
}

func (p *Principal) HasRole(roles ...user.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
