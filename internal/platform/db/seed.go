package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/platform/logging"
)

// RecordLoader is the part of the record store the seeder needs.
type RecordLoader interface {
	Count(ctx context.Context) (int, error)
	Load(ctx context.Context, data map[hr.Entity][]hr.Record) error
}

// AccountEnsurer inserts an account unless its email already exists.
type AccountEnsurer interface {
	EnsureAccount(ctx context.Context, account auth.Account) error
}

// Seed loads the demo dataset into an empty record store and makes sure the
// demo accounts exist.
func Seed(ctx context.Context, records RecordLoader, accounts AccountEnsurer, now time.Time) error {
	if err := ensureDataset(ctx, records, now); err != nil {
		return err
	}
	return ensureDemoAccounts(ctx, accounts)
}

func ensureDataset(ctx context.Context, records RecordLoader, now time.Time) error {
	n, err := records.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logging.FromContext(ctx).WithField("records", n).Info("record store already seeded")
		return nil
	}
	data := hr.Dataset(now, uuid.NewString)
	if err := records.Load(ctx, data); err != nil {
		return err
	}
	total := 0
	for _, rows := range data {
		total += len(rows)
	}
	logging.FromContext(ctx).WithField("records", total).Info("seeded demo dataset")
	return nil
}

func ensureDemoAccounts(ctx context.Context, accounts AccountEnsurer) error {
	demo, err := auth.HashDemoAccounts()
	if err != nil {
		return err
	}
	for _, account := range demo {
		if err := accounts.EnsureAccount(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
