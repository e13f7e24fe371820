package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func TestFormatterDisplay(t *testing.T) {
	f, err := NewFormatter("EUR")
	if err != nil {
		t.Fatalf("NewFormatter() unexpected error: %v", err)
	}
	amount := decimal.RequireFromString("1234.5")

	tests := []struct {
		tag  language.Tag
		want string
	}{
		{tag: language.English, want: "€ 1,234.50"},
		{tag: language.German, want: "€ 1.234,50"},
	}
	for _, tc := range tests {
		if got := f.Display(amount, tc.tag); got != tc.want {
			t.Fatalf("Display(%s) = %q, want %q", tc.tag, got, tc.want)
		}
	}
}

func TestNewFormatterRejectsUnknownCurrency(t *testing.T) {
	if _, err := NewFormatter("EURO"); err == nil {
		t.Fatalf("NewFormatter() expected error")
	}
}

func TestFixed(t *testing.T) {
	tests := map[string]string{
		"50":     "50.00",
		"10.5":   "10.50",
		"0.125":  "0.13",
		"100.00": "100.00",
	}
	for in, want := range tests {
		if got := Fixed(decimal.RequireFromString(in)); got != want {
			t.Fatalf("Fixed(%s) = %q, want %q", in, got, want)
		}
	}
}
