// Package events fans out applied donations to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	natsMaxReconnects = -1
	natsReconnectWait = 2 * time.Second
)

// DonationApplied is emitted after a confirmed donation has been committed.
type DonationApplied struct {
	PaymentID    string    `json:"paymentId,omitempty"`
	DonorName    string    `json:"donorName"`
	Amount       string    `json:"amount"`
	DonorTotal   string    `json:"donorTotal"`
	ExtraMinutes string    `json:"extraMinutes"`
	FastEnd      time.Time `json:"fastEnd"`
	Capped       bool      `json:"capped"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher delivers DonationApplied events.
type Publisher interface {
	PublishDonationApplied(ctx context.Context, evt DonationApplied) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishDonationApplied(context.Context, DonationApplied) error { return nil }

// NATSPublisher publishes events on a single core NATS subject.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// ConnectNATS dials url and keeps reconnecting for the life of the process.
func ConnectNATS(url, subject string, logger zerolog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("fastcountdown"),
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) PublishDonationApplied(ctx context.Context, evt DonationApplied) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := newMessage(p.subject, evt)
	if err != nil {
		return err
	}
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}

func newMessage(subject string, evt DonationApplied) (*nats.Msg, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	if evt.PaymentID != "" {
		// JetStream consumers dedupe on this header.
		msg.Header.Set(nats.MsgIdHdr, evt.PaymentID)
	}
	return msg, nil
}

var (
	_ Publisher = NopPublisher{}
	_ Publisher = (*NATSPublisher)(nil)
)
