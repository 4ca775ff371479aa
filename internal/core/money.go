// Package core holds the domain model shared by every other package.
//
// This file contains helpers for parsing and formatting monetary amounts.
// Amounts stay exact decimals through every computation; callers convert
// to float64 only at the chart boundary.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-supplied amount string to an exact decimal.
//
// It accepts both dot (1200.50) and comma (1200,50) separators and rounds
// half-up to two decimal places. Empty, malformed, negative, and zero
// amounts are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseGoalAmount is ParseAmount with zero allowed; goal fields use zero
// to mean "not set".
func ParseGoalAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatTZS renders an amount for display, e.g. "TZS 12,500.00".
func FormatTZS(d decimal.Decimal) string {
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "TZS " + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
