package thermal

import (
	"math"
	"testing"

	"github.com/kisan-depin/dmrv/pkg/raster"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

func TestSynthesizeCompliantCeiling(t *testing.T) {
	f := Synthesize(256, 256, verify.Compliant, 7)

	for _, v := range f.V {
		if v < 0 || v > CompliantCeiling {
			t.Fatalf("compliant intensity %f outside [0, %g]", v, CompliantCeiling)
		}
	}
}

func TestSynthesizeViolationHotspots(t *testing.T) {
	f := Synthesize(256, 256, verify.Violation, 7)

	if f.Max() <= CompliantCeiling {
		t.Errorf("violation max = %f, want > %g", f.Max(), CompliantCeiling)
	}
	for _, v := range f.V {
		if v < 0 || v > 1 {
			t.Fatalf("violation intensity %f outside [0, 1]", v)
		}
	}
}

func TestSynthesizeDeterminism(t *testing.T) {
	a := Synthesize(128, 128, verify.Violation, DemoSeed)
	b := Synthesize(128, 128, verify.Violation, DemoSeed)

	for i := range a.V {
		if a.V[i] != b.V[i] {
			t.Fatal("same seed should produce identical fields")
		}
	}
}

func TestSynthesizeSeedVariation(t *testing.T) {
	a := Synthesize(128, 128, verify.Violation, 1)
	b := Synthesize(128, 128, verify.Violation, 2)

	same := true
	for i := range a.V {
		if a.V[i] != b.V[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should produce different fields")
	}
}

func TestSynthesizeSmallField(t *testing.T) {
	// Fields narrower than the hotspot margin must not panic.
	f := Synthesize(64, 64, verify.Violation, 3)
	if f.Max() <= 0 {
		t.Error("small violation field should still carry intensity")
	}
}

func TestRampRGB(t *testing.T) {
	tests := []struct {
		t       float64
		r, g, b uint8
	}{
		{0, 0, 0, 255},     // cold: pure blue
		{0.5, 127, 255, 0}, // mid: green peak
		{1, 255, 0, 0},     // hot: pure red
	}

	for _, tt := range tests {
		r, g, b := RampRGB(tt.t)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("RampRGB(%g) = (%d, %d, %d), want (%d, %d, %d)",
				tt.t, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestHeatmapSize(t *testing.T) {
	f := Synthesize(64, 48, verify.Compliant, 1)
	h := Heatmap(f)

	if h.W != 64 || h.H != 48 {
		t.Errorf("heatmap size = %dx%d, want 64x48", h.W, h.H)
	}
}

func TestBlendEndpoints(t *testing.T) {
	base := raster.New(8, 8)
	heat := raster.New(8, 8)
	for i := range base.Pix {
		base.Pix[i] = 100
		heat.Pix[i] = 200
	}

	// Alpha 0 keeps the base, alpha 1 keeps the heat layer.
	if got := Blend(base, heat, 0).Pix[0]; got != 100 {
		t.Errorf("alpha 0 pixel = %d, want 100", got)
	}
	if got := Blend(base, heat, 1).Pix[0]; got != 200 {
		t.Errorf("alpha 1 pixel = %d, want 200", got)
	}

	mid := Blend(base, heat, DefaultAlpha).Pix[0]
	want := uint8(math.Round(100*0.6 + 200*0.4))
	if mid != want {
		t.Errorf("alpha %g pixel = %d, want %d", DefaultAlpha, mid, want)
	}
}
