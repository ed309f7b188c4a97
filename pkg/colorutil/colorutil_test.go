package colorutil

import (
	"image/color"
	"testing"
)

func TestHeatRampEndpoints(t *testing.T) {
	if got := HeatRamp(0); got != (color.RGBA{R: 37, G: 99, B: 235, A: 255}) {
		t.Errorf("HeatRamp(0) = %v, want blue", got)
	}
	if got := HeatRamp(1); got != Red {
		t.Errorf("HeatRamp(1) = %v, want red", got)
	}

	// Out-of-range intensities clamp to the endpoints.
	if HeatRamp(-3) != HeatRamp(0) {
		t.Error("negative intensity should clamp to 0")
	}
	if HeatRamp(7) != HeatRamp(1) {
		t.Error("intensity above 1 should clamp to 1")
	}
}

func TestHeatRampOpaque(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if HeatRamp(v).A != 255 {
			t.Errorf("HeatRamp(%v) not opaque", v)
		}
	}
}

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		severity string
		want     color.RGBA
	}{
		{"critical", Red},
		{"high", Red},
		{"moderate", Orange},
		{"low", Yellow},
		{"benign", Green},
		{"unheard-of", Yellow},
		{"", Yellow},
	}
	for _, tt := range tests {
		if got := SeverityColor(tt.severity); got != tt.want {
			t.Errorf("SeverityColor(%q) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestConfidenceColor(t *testing.T) {
	if ConfidenceColor(0.9) != Green {
		t.Error("high confidence should be green")
	}
	if ConfidenceColor(0.7) != Yellow {
		t.Error("medium confidence should be yellow")
	}
	if ConfidenceColor(0.3) != Red {
		t.Error("low confidence should be red")
	}
}
