package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestExpectedReturnRates(t *testing.T) {
	cases := []struct {
		invType string
		amount  float64
		want    float64
	}{
		{TypeRealEstate, 1000, 180},
		{TypeEurobonds, 2000, 170},
		{TypeAgriTech, 1000, 220},
		{TypeUSStocks, 500, 60},
		{TypeSavings, 1000, 150},
		{TypeEducation, 1000, 100},
	}
	for _, tc := range cases {
		got, err := ExpectedReturn(tc.invType, tc.amount)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.invType, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: expected %.2f, got %.2f", tc.invType, tc.want, got)
		}
	}
}

func TestExpectedReturnInvalidType(t *testing.T) {
	_, err := ExpectedReturn("crypto", 1000)
	if !errors.Is(err, ErrInvalidInvestmentType) {
		t.Fatalf("expected ErrInvalidInvestmentType, got %v", err)
	}
}

func TestValidInvestmentType(t *testing.T) {
	if !ValidInvestmentType(TypeAgriTech) {
		t.Fatal("agri_tech rejected")
	}
	if ValidInvestmentType("crypto") {
		t.Fatal("unknown type accepted")
	}
}

func TestMaturityDateUsesCalendarMonths(t *testing.T) {
	start := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	got := MaturityDate(start, 12)
	want := time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// AddDate normalizes Jan 31 + 1 month to March 3.
	got = MaturityDate(start, 1)
	want = time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestProgress(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 100)
	inv := Investment{StartDate: start, EndDate: end}

	if got := inv.Progress(start.AddDate(0, 0, -1)); got != 0 {
		t.Fatalf("before start: expected 0, got %d", got)
	}
	if got := inv.Progress(start); got != 0 {
		t.Fatalf("at start: expected 0, got %d", got)
	}
	if got := inv.Progress(start.AddDate(0, 0, 50)); got != 50 {
		t.Fatalf("midway: expected 50, got %d", got)
	}
	if got := inv.Progress(end); got != 100 {
		t.Fatalf("at end: expected 100, got %d", got)
	}
	if got := inv.Progress(end.AddDate(0, 0, 30)); got != 100 {
		t.Fatalf("past end: expected 100, got %d", got)
	}
}

func TestRemainingDays(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	inv := Investment{StartDate: start, EndDate: end}

	if got := inv.RemainingDays(start); got != 30 {
		t.Fatalf("at start: expected 30, got %d", got)
	}
	// Partial days round up.
	if got := inv.RemainingDays(end.Add(-time.Hour)); got != 1 {
		t.Fatalf("one hour left: expected 1, got %d", got)
	}
	if got := inv.RemainingDays(end); got != 0 {
		t.Fatalf("at end: expected 0, got %d", got)
	}
	if got := inv.RemainingDays(end.AddDate(0, 0, 5)); got != 0 {
		t.Fatalf("past end: expected 0, got %d", got)
	}
}

func TestValidInvestmentStatus(t *testing.T) {
	for _, s := range []string{InvestmentPending, InvestmentActive, InvestmentCompleted, InvestmentCancelled} {
		if !ValidInvestmentStatus(s) {
			t.Fatalf("status %q rejected", s)
		}
	}
	if ValidInvestmentStatus("paused") {
		t.Fatal("unknown status accepted")
	}
}
