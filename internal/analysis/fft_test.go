package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumPeak(t *testing.T) {
	// 8 cycles over 128 samples.
	n := 128
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	if maxIdx != 8 {
		t.Errorf("expected peak at bin 8, got %d", maxIdx)
	}
}

func TestDominantFrequency(t *testing.T) {
	// 2 hz sine sampled at 50 hz for 256 samples.
	dt := 0.02
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 2.0 * float64(i) * dt)
	}

	ps := PowerSpectrum(data)
	freq := DominantFrequency(ps, dt)

	if math.Abs(freq-2.0) > 0.2 {
		t.Errorf("expected ~2 hz, got %.3f", freq)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if f := DominantFrequency(nil, 0.02); f != 0 {
		t.Errorf("expected 0 for empty spectrum, got %f", f)
	}
	if f := DominantFrequency([]float64{1, 2, 3}, 0); f != 0 {
		t.Errorf("expected 0 for zero dt, got %f", f)
	}
}

func TestPadPow2(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	padded := PadPow2(data)

	if len(padded) != 8 {
		t.Errorf("expected length 8, got %d", len(padded))
	}
	for i, v := range data {
		if padded[i] != v {
			t.Errorf("expected padded[%d] = %f, got %f", i, v, padded[i])
		}
	}
	for i := len(data); i < len(padded); i++ {
		if padded[i] != 0 {
			t.Errorf("expected zero padding at %d, got %f", i, padded[i])
		}
	}
}

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	ps := PowerSpectrum(data)

	if ps[0] != 4 {
		t.Errorf("expected DC magnitude 4, got %f", ps[0])
	}
	if ps[1] > 1e-9 {
		t.Errorf("expected no non-DC content, got %f", ps[1])
	}
}
