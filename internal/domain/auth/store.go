package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL AccountStore.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindAccount(ctx context.Context, email string) (Account, error) {
	var out Account
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(employee_id, ''), first_name, last_name, email,
           COALESCE(position_name, ''), role_level, password_hash
    FROM accounts
    WHERE email = $1
  `, NormalizeEmail(email)).Scan(
		&out.EmployeeID, &out.FirstName, &out.LastName, &out.Email,
		&out.PositionName, &out.RoleLevel, &out.PasswordHash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, err
	}
	out.Role = RoleForLevel(out.RoleLevel)
	return out, nil
}

func (s *Store) CreateAccount(ctx context.Context, account Account) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO accounts (email, employee_id, first_name, last_name, position_name, role_level, password_hash)
    VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6, $7)
  `, NormalizeEmail(account.Email), account.EmployeeID, account.FirstName, account.LastName,
		account.PositionName, account.RoleLevel, account.PasswordHash)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

// EnsureAccount inserts the account unless the email already exists.
func (s *Store) EnsureAccount(ctx context.Context, account Account) error {
	err := s.CreateAccount(ctx, account)
	if errors.Is(err, ErrEmailTaken) {
		return nil
	}
	return err
}

// SetRoleLevel grants or revokes access for an existing account.
func (s *Store) SetRoleLevel(ctx context.Context, email string, level int) error {
	tag, err := s.DB.Exec(ctx, "UPDATE accounts SET role_level = $1 WHERE email = $2", level, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
