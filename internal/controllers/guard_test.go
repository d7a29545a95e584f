package controllers

import (
	"testing"

	"github.com/skarn/linectl/internal/drive"
)

type stubRanger struct {
	dist float64
}

func (s *stubRanger) Distance() float64 { return s.dist }

func TestGuardBlocksWhenClose(t *testing.T) {
	inner := NewDifferential(120, 0.15, 60, -255, 255)
	ranger := &stubRanger{dist: 10}
	guard := NewGuard(inner, ranger, 15)

	cmd := guard.Compute(drive.SensorPair{Left: 500, Right: 300}, 0)
	if cmd != drive.Stop {
		t.Errorf("expected all-stop below threshold, got %v", cmd)
	}
	if guard.BlockedCycles() != 1 {
		t.Errorf("expected 1 blocked cycle, got %d", guard.BlockedCycles())
	}
}

func TestGuardPassesWhenClear(t *testing.T) {
	inner := NewDifferential(120, 0.15, 60, -255, 255)
	ranger := &stubRanger{dist: 100}
	guard := NewGuard(inner, ranger, 15)

	cmd := guard.Compute(drive.SensorPair{Left: 500, Right: 300}, 0)
	if cmd.Left != 90 || cmd.Right != 150 {
		t.Errorf("expected inner command 90/150, got %d/%d", cmd.Left, cmd.Right)
	}
}

func TestGuardResumes(t *testing.T) {
	inner := NewFixed(100, 100)
	ranger := &stubRanger{dist: 5}
	guard := NewGuard(inner, ranger, 15)

	if cmd := guard.Compute(drive.SensorPair{}, 0); cmd != drive.Stop {
		t.Fatalf("expected stop while blocked, got %v", cmd)
	}

	ranger.dist = 50
	cmd := guard.Compute(drive.SensorPair{}, 0.02)
	if cmd.Left != 100 || cmd.Right != 100 {
		t.Errorf("expected resume at 100/100, got %d/%d", cmd.Left, cmd.Right)
	}
}
