package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AnonymousDonor is the identity shared by every donation without a name.
const AnonymousDonor = "Anonymous"

const (
	// maxAmountScale and maxAmountDigits bound the decimal representation
	// accepted before rounding; rescaling cost grows with the exponent.
	maxAmountScale  = 18
	maxAmountDigits = 32
)

// MaxDonationAmount is the first amount that no longer fits numeric(14, 2).
var MaxDonationAmount = decimal.New(1, 12)

// DonorRecord is the aggregated contribution of a single donor name.
type DonorRecord struct {
	DonorName     string
	TotalDonation decimal.Decimal
}

// ConfirmedDonation is a payment the provider has already verified.
type ConfirmedDonation struct {
	PaymentID string
	DonorName string
	Amount    decimal.Decimal
}

// NormalizeDonorName maps the empty name to AnonymousDonor. Any other name,
// whitespace included, is kept byte for byte so identity stays case-sensitive.
func NormalizeDonorName(name string) string {
	if name == "" {
		return AnonymousDonor
	}
	return name
}

// ValidateAmount rejects zero, negative and out-of-range donation amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if err := checkAmountShape(amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}
	if amount.GreaterThanOrEqual(MaxDonationAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidAmount, amount.String(), MaxDonationAmount.String())
	}
	return nil
}

// checkAmountShape rejects representations too large to rescale cheaply,
// e.g. "1e-999999999".
func checkAmountShape(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp < -maxAmountScale || exp > maxAmountDigits {
		return fmt.Errorf("%w: exponent %d out of range", ErrInvalidAmount, exp)
	}
	if amount.NumDigits() > maxAmountDigits {
		return fmt.Errorf("%w: more than %d digits", ErrInvalidAmount, maxAmountDigits)
	}
	return nil
}

// Normalize returns a copy ready to be applied to the stores. Amounts are
// rounded to cents before validation.
func (d ConfirmedDonation) Normalize() (ConfirmedDonation, error) {
	if err := checkAmountShape(d.Amount); err != nil {
		return d, err
	}
	d.Amount = d.Amount.Round(2)
	if err := ValidateAmount(d.Amount); err != nil {
		return d, err
	}
	d.DonorName = NormalizeDonorName(d.DonorName)
	d.PaymentID = strings.TrimSpace(d.PaymentID)
	return d, nil
}
