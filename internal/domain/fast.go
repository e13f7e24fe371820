package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Campaign holds the deploy-time constants of the countdown.
type Campaign struct {
	Start               time.Time
	InitialMinutes      int64
	MaxTotalMinutes     int64
	DonationMinutesRate decimal.Decimal
}

// Validate rejects campaigns whose cap sits below the base duration or whose
// conversion rate cannot extend the countdown.
func (c Campaign) Validate() error {
	if c.Start.IsZero() {
		return fmt.Errorf("%w: start instant is required", ErrInvalidConfig)
	}
	if c.InitialMinutes < 0 {
		return fmt.Errorf("%w: initial minutes must not be negative", ErrInvalidConfig)
	}
	if c.MaxTotalMinutes < c.InitialMinutes {
		return fmt.Errorf("%w: max total minutes (%d) below initial minutes (%d)", ErrInvalidConfig, c.MaxTotalMinutes, c.InitialMinutes)
	}
	if !c.DonationMinutesRate.IsPositive() {
		return fmt.Errorf("%w: donation minutes rate must be positive", ErrInvalidConfig)
	}
	return nil
}

// MaxExtraMinutes is the most time donations can ever add.
func (c Campaign) MaxExtraMinutes() decimal.Decimal {
	return decimal.NewFromInt(c.MaxTotalMinutes - c.InitialMinutes)
}

// InitialEnd is the deadline before any donation.
func (c Campaign) InitialEnd() time.Time {
	return c.Start.Add(time.Duration(c.InitialMinutes) * time.Minute)
}

// MaxEnd is the latest deadline the countdown can ever report.
func (c Campaign) MaxEnd() time.Time {
	return c.Start.Add(time.Duration(c.MaxTotalMinutes) * time.Minute)
}

// MinutesFor converts a donation amount into countdown minutes.
func (c Campaign) MinutesFor(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.DonationMinutesRate)
}

// DeadlineFor resolves the absolute deadline for a stored extra-minutes value.
// Out-of-range stored values are clamped to the campaign window.
func (c Campaign) DeadlineFor(extraMinutes decimal.Decimal) time.Time {
	if extraMinutes.IsNegative() {
		extraMinutes = decimal.Zero
	}
	maxEnd := c.MaxEnd()
	if extraMinutes.GreaterThanOrEqual(c.MaxExtraMinutes()) {
		return maxEnd
	}
	extra := time.Duration(extraMinutes.Mul(decimal.NewFromInt(int64(time.Minute))).IntPart())
	end := c.InitialEnd().Add(extra)
	if end.After(maxEnd) {
		return maxEnd
	}
	return end
}

// FastState is the persisted singleton tracking donation-driven extension.
type FastState struct {
	ExtraMinutes decimal.Decimal
	UpdatedAt    time.Time
}

// DeadlineStatus is the read model served to polling clients.
type DeadlineStatus struct {
	FastEnd          time.Time
	ExtraMinutes     decimal.Decimal
	MaxExtraMinutes  decimal.Decimal
	Capped           bool
	Ended            bool
	RemainingSeconds int64
}
