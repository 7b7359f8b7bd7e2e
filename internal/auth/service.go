package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/user"
)

// Service runs registration, login and principal resolution.
type Service struct {
	userRepo UserRepository
	tokens   TokenService
	hasher   PasswordHasher
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewService(userRepo UserRepository, tokens TokenService, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger,
	}
}

// Register creates a USER account and signs it in.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, dto.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		s.logger.Info("registration rejected: username taken", "username", dto.Username)
		return nil, internal.ErrDuplicateUsername
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, dto.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		s.logger.Info("registration rejected: email taken", "username", dto.Username)
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := user.NewUser(dto.Username, dto.Email, hash)
	if err := s.userRepo.Save(ctx, u); err != nil {
		s.logger.Error("failed to save user", "username", dto.Username, "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	return s.respond(u)
}

// Authenticate signs in by username or email. Unknown accounts and wrong
// passwords produce the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.FindByUsernameOrEmail(ctx, dto.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			// keep the response time close to a real comparison
			s.hasher.Matches(dto.Password, s.placeholderHash())
			s.logger.Debug("login failed: unknown account")
			return nil, internal.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Matches(dto.Password, u.PasswordHash) {
		s.logger.Debug("login failed: password mismatch", "user_id", u.ID)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("user authenticated", "user_id", u.ID)
	return s.respond(u)
}

// LoadPrincipal resolves the identity named by a token subject.
func (s *Service) LoadPrincipal(ctx context.Context, identifier string) (*Principal, error) {
	u, err := s.userRepo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return NewPrincipal(u), nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}

func (s *Service) respond(u *user.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	expiresAt, err := s.tokens.ExpiryOf(token)
	if err != nil {
		return nil, fmt.Errorf("read token expiry: %w", err)
	}
	return &AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UnixMilli(),
		User:        u.ToView(),
	}, nil
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password")
		if err != nil {
			s.logger.Warn("failed to prepare placeholder hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
