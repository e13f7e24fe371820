package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// FastStateRepository persists the singleton FastState row.
type FastStateRepository interface {
	// Get returns the zero state when nothing has been stored yet.
	Get(ctx context.Context) (FastState, error)
	// AddExtraMinutes atomically adds delta, saturating at maxExtra, and
	// returns the stored value.
	AddExtraMinutes(ctx context.Context, delta, maxExtra decimal.Decimal) (decimal.Decimal, error)
}

// DonorRepository persists per-donor totals.
type DonorRepository interface {
	// AddDonation atomically increments the donor total, creating the record
	// on first use, and returns the new total.
	AddDonation(ctx context.Context, donorName string, amount decimal.Decimal) (decimal.Decimal, error)
	// ListRanked returns every record by total descending, name ascending.
	ListRanked(ctx context.Context) ([]DonorRecord, error)
}

// PaymentRepository remembers which payment ids were already applied.
type PaymentRepository interface {
	// MarkProcessed returns false when the payment id was already recorded.
	MarkProcessed(ctx context.Context, donation ConfirmedDonation) (bool, error)
}

// Repositories groups the stores bound to one connection or transaction.
type Repositories struct {
	Fast     FastStateRepository
	Donors   DonorRepository
	Payments PaymentRepository
}

// UnitOfWork runs fn against repositories sharing one transaction. Returning an
// error from fn rolls everything back.
type UnitOfWork interface {
	Repositories() Repositories
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
