// Package donation applies confirmed payments to the leaderboard and the
// countdown as one atomic step.
package donation

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fastcountdown/internal/deadline"
	"fastcountdown/internal/domain"
	"fastcountdown/internal/events"
	"fastcountdown/internal/leaderboard"
)

// Result describes the state after a confirmation.
type Result struct {
	Donation     domain.ConfirmedDonation
	DonorTotal   decimal.Decimal
	ExtraMinutes decimal.Decimal
	FastEnd      time.Time
	Capped       bool
	Duplicate    bool
}

// Processor is the single entry point for confirmed payments.
type Processor struct {
	uow       domain.UnitOfWork
	campaign  domain.Campaign
	clock     clockwork.Clock
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewProcessor wires a processor. A nil publisher drops events and a nil clock
// uses wall time.
func NewProcessor(uow domain.UnitOfWork, campaign domain.Campaign, clock clockwork.Clock, publisher events.Publisher, logger zerolog.Logger) *Processor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Processor{uow: uow, campaign: campaign, clock: clock, publisher: publisher, logger: logger}
}

// Confirm records the donation against its donor and extends the countdown.
// A payment id that was already applied leaves state untouched and returns
// domain.ErrDuplicateOperation together with the current deadline.
func (p *Processor) Confirm(ctx context.Context, donation domain.ConfirmedDonation) (Result, error) {
	d, err := donation.Normalize()
	if err != nil {
		return Result{}, err
	}

	res := Result{Donation: d}
	err = p.uow.Do(ctx, func(repos domain.Repositories) error {
		if d.PaymentID != "" {
			inserted, err := repos.Payments.MarkProcessed(ctx, d)
			if err != nil {
				return err
			}
			if !inserted {
				res.Duplicate = true
				state, err := repos.Fast.Get(ctx)
				if err != nil {
					return err
				}
				res.ExtraMinutes = state.ExtraMinutes
				return nil
			}
		}

		total, err := leaderboard.NewAggregator(repos.Donors).RecordDonation(ctx, d.DonorName, d.Amount)
		if err != nil {
			return err
		}
		extra, err := deadline.NewEngine(repos.Fast, p.campaign, p.clock).ApplyDonation(ctx, d.Amount)
		if err != nil {
			return err
		}
		res.DonorTotal = total
		res.ExtraMinutes = extra
		return nil
	})
	if err != nil {
		p.logger.Error().Err(err).Str("payment_id", d.PaymentID).Str("donor", d.DonorName).Msg("donation confirmation failed")
		return Result{}, fmt.Errorf("confirm donation: %w", err)
	}

	// A row left above the cap by an older configuration is reported at the
	// cap, the same value deadline status serves.
	maxExtra := p.campaign.MaxExtraMinutes()
	res.ExtraMinutes = decimal.Min(decimal.Max(res.ExtraMinutes, decimal.Zero), maxExtra)
	res.FastEnd = p.campaign.DeadlineFor(res.ExtraMinutes)
	res.Capped = res.ExtraMinutes.GreaterThanOrEqual(maxExtra)

	if res.Duplicate {
		p.logger.Warn().Str("payment_id", d.PaymentID).Msg("payment already applied")
		return res, fmt.Errorf("payment %s: %w", d.PaymentID, domain.ErrDuplicateOperation)
	}

	p.logger.Info().
		Str("payment_id", d.PaymentID).
		Str("donor", d.DonorName).
		Str("amount", d.Amount.StringFixed(2)).
		Str("extra_minutes", res.ExtraMinutes.String()).
		Bool("capped", res.Capped).
		Msg("donation applied")

	p.publish(ctx, res)
	return res, nil
}

// publish runs after commit; a failed publish never undoes a donation.
func (p *Processor) publish(ctx context.Context, res Result) {
	evt := events.DonationApplied{
		PaymentID:    res.Donation.PaymentID,
		DonorName:    res.Donation.DonorName,
		Amount:       res.Donation.Amount.StringFixed(2),
		DonorTotal:   res.DonorTotal.StringFixed(2),
		ExtraMinutes: res.ExtraMinutes.String(),
		FastEnd:      res.FastEnd,
		Capped:       res.Capped,
		OccurredAt:   p.clock.Now().UTC(),
	}
	if err := p.publisher.PublishDonationApplied(ctx, evt); err != nil {
		p.logger.Error().Err(err).Str("payment_id", res.Donation.PaymentID).Msg("publish donation event failed")
	}
}
