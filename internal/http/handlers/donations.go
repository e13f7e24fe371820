package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"fastcountdown/internal/domain"
	"fastcountdown/internal/middleware"
	"fastcountdown/internal/money"
)

const maxConfirmBody = 64 << 10

// confirmRequest accepts donor_name as a fallback spelling; only donorName
// travels past this point.
type confirmRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	DonorName      *string         `json:"donorName"`
	DonorNameSnake *string         `json:"donor_name"`
	PaymentID      string          `json:"paymentId"`
}

func (req confirmRequest) donorName() string {
	if req.DonorName != nil && *req.DonorName != "" {
		return *req.DonorName
	}
	if req.DonorNameSnake != nil {
		return *req.DonorNameSnake
	}
	return ""
}

type confirmResponse struct {
	DonorName    string      `json:"donorName"`
	DonorTotal   json.Number `json:"donorTotal,omitempty"`
	ExtraMinutes string      `json:"extraMinutes"`
	FastEnd      string      `json:"fastEnd"`
	Capped       bool        `json:"capped"`
	Duplicate    bool        `json:"duplicate"`
}

func (a *App) DonationsConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxConfirmBody))
	if err := dec.Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	res, err := a.Donations.Confirm(r.Context(), domain.ConfirmedDonation{
		PaymentID: req.PaymentID,
		DonorName: req.donorName(),
		Amount:    req.Amount,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", "amount must be positive and below 1000000000000")
		return
	case errors.Is(err, domain.ErrDuplicateOperation):
	case err != nil:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("service", middleware.ServiceFromContext(r.Context())).
			Msg("confirm donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to apply donation")
		return
	}

	resp := confirmResponse{
		DonorName:    res.Donation.DonorName,
		ExtraMinutes: res.ExtraMinutes.String(),
		FastEnd:      formatInstant(res.FastEnd),
		Capped:       res.Capped,
		Duplicate:    res.Duplicate,
	}
	if !res.Duplicate {
		resp.DonorTotal = json.Number(money.Fixed(res.DonorTotal))
	}
	a.json(w, http.StatusOK, resp)
}
