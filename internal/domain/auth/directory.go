package auth

import (
	"context"
	"sync"
)

// Directory is an in-memory AccountStore.
type Directory struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

func NewDirectory(accounts ...Account) *Directory {
	d := &Directory{accounts: map[string]Account{}}
	for _, account := range accounts {
		d.accounts[NormalizeEmail(account.Email)] = account
	}
	return d
}

func (d *Directory) FindAccount(ctx context.Context, email string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	account, ok := d.accounts[NormalizeEmail(email)]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (d *Directory) CreateAccount(ctx context.Context, account Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := NormalizeEmail(account.Email)
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.accounts[key]; exists {
		return ErrEmailTaken
	}
	d.accounts[key] = account
	return nil
}

// DemoAccount pairs a principal with its clear-text demo password.
type DemoAccount struct {
	Principal
	Password string
}

var DemoAccounts = []DemoAccount{
	{Principal: Principal{EmployeeID: "550e8400-e29b-41d4-a716-446655440001", FirstName: "Sarah", LastName: "Johnson", Email: "admin@hrms.com", PositionName: "HR – General Manager", RoleLevel: LevelAdmin, Role: RoleAdmin}, Password: "admin123"},
	{Principal: Principal{EmployeeID: "550e8400-e29b-41d4-a716-446655440002", FirstName: "Michael", LastName: "Chen", Email: "specialist@hrms.com", PositionName: "HR – Specialist", RoleLevel: LevelAdmin, Role: RoleAdmin}, Password: "specialist123"},
	{Principal: Principal{EmployeeID: "550e8400-e29b-41d4-a716-446655440003", FirstName: "Emily", LastName: "Davis", Email: "coordinator@hrms.com", PositionName: "HR – Coordinator", RoleLevel: LevelReadOnly, Role: RoleReadOnly}, Password: "coordinator123"},
	{Principal: Principal{EmployeeID: "550e8400-e29b-41d4-a716-446655440004", FirstName: "James", LastName: "Wilson", Email: "partner@hrms.com", PositionName: "HR – HR Partner", RoleLevel: LevelReadOnly, Role: RoleReadOnly}, Password: "partner123"},
	{Principal: Principal{EmployeeID: "550e8400-e29b-41d4-a716-446655440005", FirstName: "Alex", LastName: "Thompson", Email: "developer@hrms.com", PositionName: "Software Developer", RoleLevel: LevelNone, Role: RoleNone}, Password: "developer123"},
}

// HashDemoAccounts hashes the demo passwords into storable accounts.
func HashDemoAccounts() ([]Account, error) {
	out := make([]Account, 0, len(DemoAccounts))
	for _, demo := range DemoAccounts {
		hash, err := HashPassword(demo.Password)
		if err != nil {
			return nil, err
		}
		out = append(out, Account{Principal: demo.Principal, PasswordHash: hash})
	}
	return out, nil
}

// SetRoleLevel grants or revokes access for an existing account.
func (d *Directory) SetRoleLevel(ctx context.Context, email string, level int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := NormalizeEmail(email)
	d.mu.Lock()
	defer d.mu.Unlock()
	account, ok := d.accounts[key]
	if !ok {
		return ErrAccountNotFound
	}
	account.RoleLevel = level
	account.Role = RoleForLevel(level)
	d.accounts[key] = account
	return nil
}
