package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Authenticator verifies credentials and returns the principal they belong to.
// It does not judge the role level; the session layer rejects level -1.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Principal, error)
}

type AccountStore interface {
	FindAccount(ctx context.Context, email string) (Account, error)
	CreateAccount(ctx context.Context, account Account) error
}

// Granter changes the role level of an existing account.
type Granter interface {
	SetRoleLevel(ctx context.Context, email string, level int) error
}

type Service struct {
	Accounts AccountStore
}

func NewService(accounts AccountStore) *Service {
	return &Service{Accounts: accounts}
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Principal, error) {
	email = NormalizeEmail(email)
	account, err := s.Accounts.FindAccount(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		return Principal{}, fmt.Errorf("find account: %w", err)
	}
	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	principal := account.Principal
	principal.Role = RoleForLevel(principal.RoleLevel)
	return principal, nil
}

// Register stores a new account without access; an administrator grants a level later.
func (s *Service) Register(ctx context.Context, reg Registration) (Principal, error) {
	if err := ValidatePassword(reg.Password); err != nil {
		return Principal{}, err
	}
	hash, err := HashPassword(reg.Password)
	if err != nil {
		return Principal{}, fmt.Errorf("hash password: %w", err)
	}
	account := Account{
		Principal: Principal{
			FirstName:    strings.TrimSpace(reg.FirstName),
			LastName:     strings.TrimSpace(reg.LastName),
			Email:        NormalizeEmail(reg.Email),
			PositionName: strings.TrimSpace(reg.PositionName),
			RoleLevel:    LevelNone,
			Role:         RoleNone,
		},
		PasswordHash: hash,
	}
	if err := s.Accounts.CreateAccount(ctx, account); err != nil {
		return Principal{}, err
	}
	return account.Principal, nil
}

// Grant sets the role level of an account when Accounts supports it.
func (s *Service) Grant(ctx context.Context, email string, level int) error {
	if level < LevelNone || level > LevelAdmin {
		return ErrInvalidLevel
	}
	g, ok := s.Accounts.(Granter)
	if !ok {
		return errors.New("account store cannot change role levels")
	}
	return g.SetRoleLevel(ctx, NormalizeEmail(email), level)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
