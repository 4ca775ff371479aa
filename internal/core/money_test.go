package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decimalFromInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1500", "1500", true},
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{"12.345", "12.35", true}, // half-up on the third decimal
		{"12.344", "12.34", true},
		{" 500 ", "500", true},
		{"", "", false},
		{"0", "", false},
		{"-5", "", false},
		{"+5", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if got.String() != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestParseGoalAmountAllowsZero(t *testing.T) {
	for _, in := range []string{"", "0", "0,00"} {
		got, err := ParseGoalAmount(in)
		if err != nil {
			t.Fatalf("%q: expected ok, got %v", in, err)
		}
		if !got.IsZero() {
			t.Fatalf("%q: expected zero, got %s", in, got)
		}
	}
	if _, err := ParseGoalAmount("-1"); err == nil {
		t.Fatalf("negative goal amount should be rejected")
	}
}

func TestFormatTZS(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "TZS 0.00"},
		{500, "TZS 500.00"},
		{12500, "TZS 12,500.00"},
		{1234567, "TZS 1,234,567.00"},
	}
	for _, tc := range cases {
		got := FormatTZS(decimalFromInt(tc.in))
		if got != tc.want {
			t.Fatalf("%d: got %q want %q", tc.in, got, tc.want)
		}
	}
	if got := FormatTZS(decimalFromInt(-2500)); got != "-TZS 2,500.00" {
		t.Fatalf("negative: got %q", got)
	}
}
