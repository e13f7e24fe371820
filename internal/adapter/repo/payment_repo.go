package repo

import (
	"context"
	"fmt"

	"fastcountdown/internal/domain"
	"fastcountdown/internal/infra"
	"fastcountdown/internal/sqlinline"
)

// PaymentRepositoryPG implements PaymentRepository using PostgreSQL.
type PaymentRepositoryPG struct {
	db infra.SQLExecutor
}

// NewPaymentRepository creates a new processed payment repo.
func NewPaymentRepository(db infra.SQLExecutor) *PaymentRepositoryPG {
	return &PaymentRepositoryPG{db: db}
}

// MarkProcessed inserts the payment id; zero affected rows means it was seen before.
func (r *PaymentRepositoryPG) MarkProcessed(ctx context.Context, donation domain.ConfirmedDonation) (bool, error) {
	tag, err := r.db.Exec(ctx, sqlinline.QInsertProcessedPayment, donation.PaymentID, donation.DonorName, donation.Amount.String())
	if err != nil {
		return false, fmt.Errorf("mark payment %q processed: %w: %w", donation.PaymentID, domain.ErrPersistence, err)
	}
	return tag.RowsAffected() == 1, nil
}

var _ domain.PaymentRepository = (*PaymentRepositoryPG)(nil)
