package repo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fastcountdown/internal/domain"
	"fastcountdown/internal/infra"
	"fastcountdown/internal/sqlinline"
)

// DonorRepositoryPG implements DonorRepository using PostgreSQL.
type DonorRepositoryPG struct {
	db infra.SQLExecutor
}

// NewDonorRepository creates a new donor repo.
func NewDonorRepository(db infra.SQLExecutor) *DonorRepositoryPG {
	return &DonorRepositoryPG{db: db}
}

// AddDonation upserts the donor row, incrementing its total in place.
func (r *DonorRepositoryPG) AddDonation(ctx context.Context, donorName string, amount decimal.Decimal) (decimal.Decimal, error) {
	var total string
	if err := r.db.QueryRow(ctx, sqlinline.QAddDonorTotal, donorName, amount.String()).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("add donation for %q: %w: %w", donorName, domain.ErrPersistence, err)
	}
	parsed, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse total_donation: %w: %w", domain.ErrPersistence, err)
	}
	return parsed, nil
}

// ListRanked returns every donor ordered by total descending, name ascending.
func (r *DonorRepositoryPG) ListRanked(ctx context.Context) ([]domain.DonorRecord, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListDonorRanking)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	items := []domain.DonorRecord{}
	for rows.Next() {
		var name, total string
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("scan donor: %w: %w", domain.ErrPersistence, err)
		}
		parsed, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parse total_donation: %w: %w", domain.ErrPersistence, err)
		}
		items = append(items, domain.DonorRecord{DonorName: name, TotalDonation: parsed})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donors: %w: %w", domain.ErrPersistence, err)
	}
	return items, nil
}

var _ domain.DonorRepository = (*DonorRepositoryPG)(nil)
