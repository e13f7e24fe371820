package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastcountdown/internal/adapter/repo"
	"fastcountdown/internal/domain"
)

func newAggregator() *Aggregator {
	return NewAggregator(repo.NewMemoryStore(nil).Repositories().Donors)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func names(items []domain.DonorRecord) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.DonorName)
	}
	return out
}

type unsortedDonorRepo struct {
	items []domain.DonorRecord
	err   error
}

func (u unsortedDonorRepo) AddDonation(context.Context, string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, u.err
}

func (u unsortedDonorRepo) ListRanked(context.Context) ([]domain.DonorRecord, error) {
	return append([]domain.DonorRecord(nil), u.items...), u.err
}

func TestRecordDonationAggregatesByName(t *testing.T) {
	agg := newAggregator()
	ctx := context.Background()

	_, err := agg.RecordDonation(ctx, "Alice", dec("30"))
	require.NoError(t, err)
	total, err := agg.RecordDonation(ctx, "Alice", dec("20"))
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("50")))
	_, err = agg.RecordDonation(ctx, "Bob", dec("10"))
	require.NoError(t, err)

	ranking, err := agg.Ranking(ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, []string{"Alice", "Bob"}, names(ranking))
	assert.Equal(t, "50.00", ranking[0].TotalDonation.StringFixed(2))
	assert.Equal(t, "10.00", ranking[1].TotalDonation.StringFixed(2))
}

func TestRecordDonationCollapsesEmptyNames(t *testing.T) {
	agg := newAggregator()
	ctx := context.Background()

	for _, name := range []string{"", "", ""} {
		_, err := agg.RecordDonation(ctx, name, dec("5"))
		require.NoError(t, err)
	}
	_, err := agg.RecordDonation(ctx, "  ", dec("7"))
	require.NoError(t, err)
	_, err = agg.RecordDonation(ctx, "anonymous", dec("1"))
	require.NoError(t, err)

	ranking, err := agg.Ranking(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.AnonymousDonor, "  ", "anonymous"}, names(ranking))
	assert.True(t, ranking[0].TotalDonation.Equal(dec("15")))
}

func TestRecordDonationIsCaseSensitive(t *testing.T) {
	agg := newAggregator()
	ctx := context.Background()
	_, _ = agg.RecordDonation(ctx, "alice", dec("1"))
	_, _ = agg.RecordDonation(ctx, "Alice", dec("1"))

	ranking, err := agg.Ranking(ctx)
	require.NoError(t, err)
	assert.Len(t, ranking, 2)
}

func TestRecordDonationRejectsNonPositive(t *testing.T) {
	agg := newAggregator()
	_, err := agg.RecordDonation(context.Background(), "Alice", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	ranking, err := agg.Ranking(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ranking)
}

func TestRankingTieBreakIsDeterministic(t *testing.T) {
	store := unsortedDonorRepo{items: []domain.DonorRecord{
		{DonorName: "Zed", TotalDonation: dec("10")},
		{DonorName: "Bob", TotalDonation: dec("10.00")},
		{DonorName: "Amy", TotalDonation: dec("25.5")},
		{DonorName: "Cat", TotalDonation: dec("10")},
	}}
	agg := NewAggregator(store)

	first, err := agg.Ranking(context.Background())
	require.NoError(t, err)
	second, err := agg.Ranking(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Amy", "Bob", "Cat", "Zed"}, names(first))
	assert.Equal(t, names(first), names(second))
}

func TestTop(t *testing.T) {
	agg := newAggregator()
	ctx := context.Background()
	for name, amount := range map[string]string{"A": "3", "B": "2", "C": "1"} {
		_, err := agg.RecordDonation(ctx, name, dec(amount))
		require.NoError(t, err)
	}

	top, err := agg.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(top))

	all, err := agg.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRankingPropagatesPersistenceFailure(t *testing.T) {
	agg := NewAggregator(unsortedDonorRepo{err: domain.ErrPersistence})
	_, err := agg.Ranking(context.Background())
	assert.True(t, errors.Is(err, domain.ErrPersistence))

	_, err = agg.RecordDonation(context.Background(), "Alice", dec("1"))
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestRecordDonationConcurrentSameDonor(t *testing.T) {
	agg := newAggregator()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := agg.RecordDonation(context.Background(), "Alice", dec("1.25"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ranking, err := agg.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.True(t, ranking[0].TotalDonation.Equal(dec("62.5")), "total = %s", ranking[0].TotalDonation)
}
