package controllers

import (
	"testing"

	"github.com/skarn/linectl/internal/drive"
)

func TestDifferentialCompute(t *testing.T) {
	tests := []struct {
		name      string
		left      int
		right     int
		wantLeft  int
		wantRight int
	}{
		{"moderate error", 500, 300, 90, 150},
		{"saturated correction", 1000, 0, 60, 180},
		{"zero error", 512, 512, 120, 120},
		{"negative error", 300, 500, 150, 90},
	}

	ctrl := NewDifferential(120, 0.15, 60, -255, 255)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ctrl.Compute(drive.SensorPair{Left: tt.left, Right: tt.right}, 0)
			if cmd.Left != tt.wantLeft {
				t.Errorf("left: expected %d, got %d", tt.wantLeft, cmd.Left)
			}
			if cmd.Right != tt.wantRight {
				t.Errorf("right: expected %d, got %d", tt.wantRight, cmd.Right)
			}
		})
	}
}

func TestDifferentialEqualInputs(t *testing.T) {
	ctrl := NewDifferential(100, 0.25, 80, -255, 255)

	for _, v := range []int{0, 1, 200, 1023} {
		cmd := ctrl.Compute(drive.SensorPair{Left: v, Right: v}, 0)
		if cmd.Left != 100 || cmd.Right != 100 {
			t.Errorf("equal inputs %d: expected 100/100, got %d/%d", v, cmd.Left, cmd.Right)
		}
	}
}

func TestDifferentialOutputSaturation(t *testing.T) {
	ctrl := NewDifferential(230, 1.0, 200, -255, 255)

	cmd := ctrl.Compute(drive.SensorPair{Left: 0, Right: 1000}, 0)
	if cmd.Left != 255 {
		t.Errorf("left should saturate at 255, got %d", cmd.Left)
	}
	if cmd.Right != 30 {
		t.Errorf("right: expected 30, got %d", cmd.Right)
	}
}

func TestDifferentialRounding(t *testing.T) {
	// 0.15 * 10 = 1.5, rounds away from zero.
	ctrl := NewDifferential(120, 0.15, 60, -255, 255)

	cmd := ctrl.Compute(drive.SensorPair{Left: 10, Right: 0}, 0)
	if cmd.Left != 118 || cmd.Right != 122 {
		t.Errorf("expected 118/122, got %d/%d", cmd.Left, cmd.Right)
	}
}

func TestDifferentialTunable(t *testing.T) {
	ctrl := NewDifferential(120, 0.15, 60, -255, 255)

	params := ctrl.GetParams()
	if params["gain"] != 0.15 {
		t.Errorf("expected gain 0.15, got %f", params["gain"])
	}

	ctrl.SetParam("gain", 0.3)
	ctrl.SetParam("base", 90)
	if ctrl.Gain != 0.3 {
		t.Errorf("expected gain 0.3, got %f", ctrl.Gain)
	}
	if ctrl.Base != 90 {
		t.Errorf("expected base 90, got %d", ctrl.Base)
	}
}
