// Package leaderboard folds confirmed donations into per-donor totals and
// serves the ranked view.
package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"fastcountdown/internal/domain"
)

// Aggregator records donations against donor totals.
type Aggregator struct {
	repo domain.DonorRepository
}

func NewAggregator(repo domain.DonorRepository) *Aggregator {
	return &Aggregator{repo: repo}
}

// RecordDonation adds amount to the donor's total. Blank names aggregate under
// domain.AnonymousDonor.
func (a *Aggregator) RecordDonation(ctx context.Context, donorName string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	name := domain.NormalizeDonorName(donorName)
	total, err := a.repo.AddDonation(ctx, name, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("record donation: %w", err)
	}
	return total, nil
}

// Ranking returns every donor by total descending; equal totals are ordered by
// donor name ascending.
func (a *Aggregator) Ranking(ctx context.Context) ([]domain.DonorRecord, error) {
	items, err := a.repo.ListRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ranking: %w", err)
	}
	SortRanking(items)
	return items, nil
}

// Top returns the first n ranked donors; n <= 0 returns everyone.
func (a *Aggregator) Top(ctx context.Context, n int) ([]domain.DonorRecord, error) {
	items, err := a.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// SortRanking orders records in place by total descending, then name.
func SortRanking(items []domain.DonorRecord) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := items[i].TotalDonation.Cmp(items[j].TotalDonation); c != 0 {
			return c > 0
		}
		return items[i].DonorName < items[j].DonorName
	})
}
