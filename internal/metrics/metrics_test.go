package metrics

import (
	"math"
	"testing"

	"github.com/skarn/linectl/internal/drive"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	if m.Value() != 0 {
		t.Errorf("expected 0 before samples, got %f", m.Value())
	}

	m.Observe(drive.SensorPair{}, drive.Command{Left: 100, Right: 140}, 0)
	m.Observe(drive.SensorPair{}, drive.Command{Left: -60, Right: 60}, 0.02)

	// (240 + 120) / 2
	if m.Value() != 180 {
		t.Errorf("expected 180, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestSaturation(t *testing.T) {
	m := NewSaturation(-255, 255)

	m.Observe(drive.SensorPair{}, drive.Command{Left: 100, Right: 140}, 0)
	m.Observe(drive.SensorPair{}, drive.Command{Left: 255, Right: 30}, 0.02)
	m.Observe(drive.SensorPair{}, drive.Command{Left: -100, Right: -255}, 0.04)
	m.Observe(drive.SensorPair{}, drive.Command{Left: 0, Right: 0}, 0.06)

	if m.Value() != 0.5 {
		t.Errorf("expected saturation 0.5, got %f", m.Value())
	}

	if m.Name() != "saturation" {
		t.Errorf("unexpected name %s", m.Name())
	}
}

func TestRMSError(t *testing.T) {
	m := NewRMSError()

	m.Observe(drive.SensorPair{Left: 500, Right: 300}, drive.Command{}, 0)
	m.Observe(drive.SensorPair{Left: 300, Right: 500}, drive.Command{}, 0.02)

	// Both samples have |error| 200.
	if math.Abs(m.Value()-200) > 1e-9 {
		t.Errorf("expected rms 200, got %f", m.Value())
	}

	m.Reset()
	m.Observe(drive.SensorPair{Left: 400, Right: 400}, drive.Command{}, 0)
	if m.Value() != 0 {
		t.Errorf("expected rms 0 for zero error, got %f", m.Value())
	}
}
