package cli

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{2.5, "$2.50"},
		{1410, "$1410.00"},
		{-1030, "-$1030.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatStrike(t *testing.T) {
	if got := FormatStrike(450); got != "450" {
		t.Errorf("round strike: got %q, want 450", got)
	}
	if got := FormatStrike(447.5); got != "447.50" {
		t.Errorf("half strike: got %q, want 447.50", got)
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(5.0); got != "5.0%" {
		t.Errorf("got %q, want 5.0%%", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2025-06-20" {
		t.Errorf("got %q, want 2025-06-20", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("zero time: got %q, want -", got)
	}
}
