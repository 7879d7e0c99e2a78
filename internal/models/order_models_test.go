package models

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPreparing, false},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusReady, false},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusCompleted, true},
		{StatusReady, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v; want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%s) = false; want true", s)
		}
	}
	for _, s := range []string{"shipped", "PENDING", ""} {
		if ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%q) = true; want false", s)
		}
	}
}

func TestMenuVersionEffectiveAt(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	bounded := MenuVersion{EffectiveFrom: from, EffectiveTo: &to}
	open := MenuVersion{EffectiveFrom: from}

	cases := []struct {
		name string
		v    MenuVersion
		at   time.Time
		want bool
	}{
		{"before window", bounded, from.Add(-time.Second), false},
		{"window start is inclusive", bounded, from, true},
		{"inside window", bounded, from.Add(24 * time.Hour), true},
		{"window end is exclusive", bounded, to, false},
		{"after window", bounded, to.Add(time.Second), false},
		{"open-ended far future", open, from.AddDate(10, 0, 0), true},
		{"open-ended before start", open, from.Add(-time.Second), false},
	}
	for _, c := range cases {
		if got := c.v.EffectiveAt(c.at); got != c.want {
			t.Errorf("%s: EffectiveAt(%v) = %v; want %v", c.name, c.at, got, c.want)
		}
	}
}

func TestValidPriceTier(t *testing.T) {
	for _, tier := range PriceTiers {
		if !ValidPriceTier(tier) {
			t.Errorf("ValidPriceTier(%s) = false; want true", tier)
		}
	}
	if ValidPriceTier("$$$$$") || ValidPriceTier("cheap") {
		t.Error("ValidPriceTier accepted an unknown tier")
	}
}
