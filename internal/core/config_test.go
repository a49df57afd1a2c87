package core

import "testing"

func TestMsToTicks(t *testing.T) {
	tests := []struct {
		name     string
		rate, ms int
		expected int
	}{
		{"clear delay at 60fps", 60, 1500, 90},
		{"hint window at 60fps", 60, 500, 30},
		{"rounds up", 30, 10, 1},
		{"zero rate falls back to 60", 0, 1000, 60},
		{"zero ms is one tick", 60, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := RuntimeConfig{TickRate: tc.rate}
			if got := cfg.MsToTicks(tc.ms); got != tc.expected {
				t.Errorf("MsToTicks(%d) = %d, expected %d", tc.ms, got, tc.expected)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionHint.String() != "Hint" {
		t.Errorf("ActionHint.String() = %q", ActionHint.String())
	}
	if Action(999).String() != "Unknown" {
		t.Error("unknown action should stringify as Unknown")
	}
	if !ActionLeft.IsDirection() || ActionHint.IsDirection() {
		t.Error("IsDirection misclassified actions")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionNewGame)
	if !f.Has(ActionNewGame) || f.Has(ActionHint) {
		t.Error("Has should report only set actions")
	}
	f.Clear()
	if f.Has(ActionNewGame) {
		t.Error("Clear should drop all actions")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}
