package pathloss

import (
	"math"
	"testing"
)

func TestLogLinearAt(t *testing.T) {
	m := LogLinear{Name: "test", Const: 40, Slope: 20}

	tests := []struct {
		dist float64
		want float64
	}{
		{1, 40},
		{10, 60},
		{100, 80},
		{1000, 100},
	}

	for _, tt := range tests {
		if got := m.At(tt.dist); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("At(%g) = %g, want %g", tt.dist, got, tt.want)
		}
	}
}

func TestFreeSpace(t *testing.T) {
	m := FreeSpace(868)

	wantConst := 20*math.Log10(868) - 27.55
	if math.Abs(m.Const-wantConst) > 1e-9 {
		t.Errorf("Const = %g, want %g", m.Const, wantConst)
	}
	if m.Slope != 20 {
		t.Errorf("Slope = %g, want 20", m.Slope)
	}

	// Free-space loss at 1 km and 868 MHz is about 91.2 dB.
	if got := m.At(1000); math.Abs(got-91.2) > 0.1 {
		t.Errorf("At(1000) = %g, want ~91.2", got)
	}
}
