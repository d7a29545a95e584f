package controllers

import (
	"testing"

	"github.com/skarn/linectl/internal/drive"
)

func TestPIDProportionalOnly(t *testing.T) {
	ctrl := NewPID(120, 0.15, 0, 0, 60, -255, 255)

	// First cycle is proportional only, no dt yet.
	cmd := ctrl.Compute(drive.SensorPair{Left: 500, Right: 300}, 0)
	if cmd.Left != 90 || cmd.Right != 150 {
		t.Errorf("expected 90/150, got %d/%d", cmd.Left, cmd.Right)
	}
}

func TestPIDSteersAgainstError(t *testing.T) {
	ctrl := NewPID(120, 0.2, 0.05, 0.1, 60, -255, 255)

	var cmd drive.Command
	tm := 0.0
	for i := 0; i < 10; i++ {
		cmd = ctrl.Compute(drive.SensorPair{Left: 600, Right: 400}, tm)
		tm += 0.02
	}

	if cmd.Left >= cmd.Right {
		t.Errorf("positive error should slow left channel, got %d/%d", cmd.Left, cmd.Right)
	}
}

func TestPIDIntegralWindupClamp(t *testing.T) {
	ctrl := NewPID(120, 0, 1.0, 0, 60, -255, 255)

	// Sustained large error: the integral must clamp at max correction.
	tm := 0.0
	var cmd drive.Command
	for i := 0; i < 10000; i++ {
		cmd = ctrl.Compute(drive.SensorPair{Left: 1023, Right: 0}, tm)
		tm += 0.02
	}

	if cmd.Left != 60 || cmd.Right != 180 {
		t.Errorf("expected clamped 60/180, got %d/%d", cmd.Left, cmd.Right)
	}
}

func TestPIDReset(t *testing.T) {
	ctrl := NewPID(120, 0.2, 0.1, 0.05, 60, -255, 255)

	tm := 0.0
	for i := 0; i < 5; i++ {
		ctrl.Compute(drive.SensorPair{Left: 800, Right: 200}, tm)
		tm += 0.02
	}

	ctrl.Reset()

	if ctrl.integral != 0 {
		t.Errorf("expected zero integral after reset, got %f", ctrl.integral)
	}
	if !ctrl.first {
		t.Error("expected first-cycle flag after reset")
	}
}

func TestPIDNonAdvancingTime(t *testing.T) {
	ctrl := NewPID(120, 0.15, 0.5, 0.5, 60, -255, 255)

	first := ctrl.Compute(drive.SensorPair{Left: 500, Right: 300}, 1.0)
	second := ctrl.Compute(drive.SensorPair{Left: 500, Right: 300}, 1.0)

	// Same timestamp falls back to proportional-only output.
	if first != second {
		t.Errorf("expected same command for repeated timestamp, got %v then %v", first, second)
	}
}

func TestFixed(t *testing.T) {
	ctrl := NewFixed(120, 120)

	cmd := ctrl.Compute(drive.SensorPair{Left: 1023, Right: 0}, 0)
	if cmd.Left != 120 || cmd.Right != 120 {
		t.Errorf("expected 120/120 regardless of reading, got %d/%d", cmd.Left, cmd.Right)
	}

	ctrl.SetCommand(drive.Command{Left: 50, Right: -50})
	cmd = ctrl.Compute(drive.SensorPair{}, 1.0)
	if cmd.Left != 50 || cmd.Right != -50 {
		t.Errorf("expected 50/-50, got %d/%d", cmd.Left, cmd.Right)
	}
}
