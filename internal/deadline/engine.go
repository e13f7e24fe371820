// Package deadline converts confirmed donations into countdown extensions and
// resolves the current absolute deadline.
package deadline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"fastcountdown/internal/domain"
)

// Engine applies donations to the persisted FastState. It holds no mutable
// state of its own; every call reads through to the repository.
type Engine struct {
	repo     domain.FastStateRepository
	campaign domain.Campaign
	clock    clockwork.Clock
}

// NewEngine builds an engine. A nil clock uses wall time.
func NewEngine(repo domain.FastStateRepository, campaign domain.Campaign, clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{repo: repo, campaign: campaign, clock: clock}
}

// ApplyDonation converts amount into minutes and adds them to the stored extra
// minutes, saturating at the campaign cap. It returns the stored value.
func (e *Engine) ApplyDonation(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	minutes := e.campaign.MinutesFor(amount)
	extra, err := e.repo.AddExtraMinutes(ctx, minutes, e.campaign.MaxExtraMinutes())
	if err != nil {
		return decimal.Zero, fmt.Errorf("apply donation: %w", err)
	}
	return extra, nil
}

// Deadline returns start + initial + extra, never later than start + max total.
func (e *Engine) Deadline(ctx context.Context) (time.Time, error) {
	state, err := e.repo.Get(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("read deadline: %w", err)
	}
	return e.campaign.DeadlineFor(state.ExtraMinutes), nil
}

// Status reports the deadline together with cap and countdown progress.
func (e *Engine) Status(ctx context.Context) (domain.DeadlineStatus, error) {
	state, err := e.repo.Get(ctx)
	if err != nil {
		return domain.DeadlineStatus{}, fmt.Errorf("read deadline status: %w", err)
	}
	maxExtra := e.campaign.MaxExtraMinutes()
	extra := decimal.Max(state.ExtraMinutes, decimal.Zero)
	end := e.campaign.DeadlineFor(extra)
	now := e.clock.Now()

	status := domain.DeadlineStatus{
		FastEnd:         end,
		ExtraMinutes:    decimal.Min(extra, maxExtra),
		MaxExtraMinutes: maxExtra,
		Capped:          extra.GreaterThanOrEqual(maxExtra),
		Ended:           !now.Before(end),
	}
	if !status.Ended {
		status.RemainingSeconds = int64(math.Ceil(end.Sub(now).Seconds()))
	}
	return status, nil
}
