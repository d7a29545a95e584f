package drive

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi int
		expected  int
	}{
		{0, -255, 255, 0},
		{-300, -255, 255, -255},
		{300, -255, 255, 255},
		{255, -255, 255, 255},
		{-255, -255, 255, -255},
		{7, 0, 1023, 7},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d): expected %d, got %d", tt.v, tt.lo, tt.hi, tt.expected, got)
		}
	}
}

func TestSensorPairError(t *testing.T) {
	s := SensorPair{Left: 500, Right: 300}
	if s.Error() != 200 {
		t.Errorf("expected error 200, got %d", s.Error())
	}

	s = SensorPair{Left: 300, Right: 500}
	if s.Error() != -200 {
		t.Errorf("expected error -200, got %d", s.Error())
	}
}
