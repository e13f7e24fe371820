package repo

import (
	"context"
	"fmt"

	"fastcountdown/internal/domain"
	"fastcountdown/internal/infra"
)

// Store binds the PostgreSQL repositories to a runner and opens transactions
// across them.
type Store struct {
	runner *infra.SQLRunner
}

// NewStore creates a PostgreSQL backed unit of work.
func NewStore(runner *infra.SQLRunner) *Store {
	return &Store{runner: runner}
}

func repositoriesFor(db infra.SQLExecutor) domain.Repositories {
	return domain.Repositories{
		Fast:     NewFastStateRepository(db),
		Donors:   NewDonorRepository(db),
		Payments: NewPaymentRepository(db),
	}
}

// Repositories returns repositories that run each statement on its own.
func (s *Store) Repositories() domain.Repositories {
	return repositoriesFor(s.runner)
}

// Do runs fn inside one transaction. Errors from fn are returned as is;
// begin and commit failures surface as ErrPersistence.
func (s *Store) Do(ctx context.Context, fn func(repos domain.Repositories) error) error {
	var fnErr error
	err := s.runner.InTx(ctx, func(tx *infra.SQLRunner) error {
		fnErr = fn(repositoriesFor(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("store transaction: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

var _ domain.UnitOfWork = (*Store)(nil)
