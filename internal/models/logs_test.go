// ABOUTME: Tests for counter, weight, and meal log models.
// ABOUTME: Covers counter type validation and constructor defaults.
package models

import (
	"testing"
	"time"
)

func TestIsValidCounterType(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"steps", true},
		{"water", true},
		{"calories", false},
		{"", false},
		{"Steps", false},
	}
	for _, tt := range tests {
		if got := IsValidCounterType(tt.in); got != tt.want {
			t.Errorf("IsValidCounterType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCounterUnits(t *testing.T) {
	if CounterUnits[CounterSteps] != "steps" {
		t.Errorf("steps unit = %q", CounterUnits[CounterSteps])
	}
	if CounterUnits[CounterWater] != "ml" {
		t.Errorf("water unit = %q", CounterUnits[CounterWater])
	}
}

func TestNewWeightLogDefaultsUnit(t *testing.T) {
	w := NewWeightLog("alice", time.Now(), 82.5, "")
	if w.Unit != "kg" {
		t.Errorf("Unit = %q, want kg", w.Unit)
	}

	w = NewWeightLog("alice", time.Now(), 181, "lb")
	if w.Unit != "lb" {
		t.Errorf("Unit = %q, want lb", w.Unit)
	}
}

func TestDefaultGoals(t *testing.T) {
	g := DefaultGoals("alice")
	if g.UserID != "alice" {
		t.Errorf("UserID = %q", g.UserID)
	}
	if g.CalorieGoal != 2000 || g.StepGoal != 10000 || g.WaterGoal != 2000 {
		t.Errorf("Unexpected defaults: %+v", g)
	}
}
