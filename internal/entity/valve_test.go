package entity

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNeedsCalibration(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	v := &Valve{}
	if !v.NeedsCalibration(now) {
		t.Error("never-calibrated valve must be due")
	}

	v.LastCalibrationDate = date(2026, time.February, 16)
	if v.NeedsCalibration(now) {
		t.Error("calibrated six months ago, not yet due")
	}

	v.LastCalibrationDate = date(2025, time.January, 1)
	if !v.NeedsCalibration(now) {
		t.Error("calibrated over a year ago, due")
	}
}

func TestNeedsService(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	v := &Valve{}
	if !v.NeedsService(now) {
		t.Error("never-serviced valve must be due")
	}

	v.LastServiceDate = date(2026, time.June, 1)
	if v.NeedsService(now) {
		t.Error("serviced three months ago, not yet due")
	}

	v.LastServiceDate = date(2026, time.January, 1)
	if !v.NeedsService(now) {
		t.Error("serviced eight months ago, due")
	}
}

func TestDocumentExpired(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	d := &Document{}
	if d.Expired(now) {
		t.Error("document without expiry never expires")
	}

	d.ExpiryDate = date(2026, time.March, 1)
	if !d.Expired(now) {
		t.Error("expired in March, now September")
	}

	d.ExpiryDate = date(2027, time.March, 1)
	if d.Expired(now) {
		t.Error("valid until next year")
	}
}
