package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"fastcountdown/internal/domain"
	"fastcountdown/internal/infra"
	"fastcountdown/internal/sqlinline"
)

// FastStateRepositoryPG implements FastStateRepository using PostgreSQL.
type FastStateRepositoryPG struct {
	db infra.SQLExecutor
}

// NewFastStateRepository creates a new fast state repo.
func NewFastStateRepository(db infra.SQLExecutor) *FastStateRepositoryPG {
	return &FastStateRepositoryPG{db: db}
}

// Get loads the singleton row; a missing row is the zero state.
func (r *FastStateRepositoryPG) Get(ctx context.Context) (domain.FastState, error) {
	var extra string
	var updatedAt time.Time
	if err := r.db.QueryRow(ctx, sqlinline.QGetFastState).Scan(&extra, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FastState{ExtraMinutes: decimal.Zero}, nil
		}
		return domain.FastState{}, fmt.Errorf("get fast state: %w: %w", domain.ErrPersistence, err)
	}
	minutes, err := decimal.NewFromString(extra)
	if err != nil {
		return domain.FastState{}, fmt.Errorf("parse extra_minutes: %w: %w", domain.ErrPersistence, err)
	}
	return domain.FastState{ExtraMinutes: minutes, UpdatedAt: updatedAt}, nil
}

// AddExtraMinutes applies delta in a single conditional upsert.
func (r *FastStateRepositoryPG) AddExtraMinutes(ctx context.Context, delta, maxExtra decimal.Decimal) (decimal.Decimal, error) {
	var stored string
	if err := r.db.QueryRow(ctx, sqlinline.QAddExtraMinutes, delta.String(), maxExtra.String()).Scan(&stored); err != nil {
		return decimal.Zero, fmt.Errorf("add extra minutes: %w: %w", domain.ErrPersistence, err)
	}
	minutes, err := decimal.NewFromString(stored)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse extra_minutes: %w: %w", domain.ErrPersistence, err)
	}
	return minutes, nil
}

var _ domain.FastStateRepository = (*FastStateRepositoryPG)(nil)
