package regionfx

import "testing"

func TestRGBAOver(t *testing.T) {
	tests := []struct {
		name     string
		src, dst RGBA
		want     RGBA
	}{
		{
			name: "opaque source replaces",
			src:  RGB(0.2, 0.4, 0.6),
			dst:  RGB(1, 1, 1),
			want: RGB(0.2, 0.4, 0.6),
		},
		{
			name: "transparent source keeps destination",
			src:  Transparent,
			dst:  RGB(0.3, 0.6, 0.9),
			want: RGB(0.3, 0.6, 0.9),
		},
		{
			name: "half alpha over opaque blends midway",
			src:  RGBA{R: 1, A: 0.5},
			dst:  RGB(0, 0, 0),
			want: RGBA{R: 0.5, A: 1},
		},
		{
			name: "source over transparent passes through",
			src:  RGBA{R: 0.8, G: 0.1, B: 0.2, A: 0.5},
			dst:  Transparent,
			want: RGBA{R: 0.8, G: 0.1, B: 0.2, A: 0.5},
		},
		{
			name: "both transparent",
			src:  Transparent,
			dst:  Transparent,
			want: Transparent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.src.Over(tt.dst)
			if !colorNear(got, tt.want, colorEpsilon) {
				t.Errorf("%+v over %+v = %+v, want %+v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestRGBAOverAccumulatesCoverage(t *testing.T) {
	// Two half-transparent layers leave 25% of the backdrop visible.
	a := RGBA{R: 1, A: 0.5}
	b := RGBA{G: 1, A: 0.5}

	got := a.Over(b)
	if !colorNear(got, RGBA{R: 2.0 / 3, G: 1.0 / 3, A: 0.75}, colorEpsilon) {
		t.Errorf("half over half = %+v", got)
	}
}

func TestRGBAScale(t *testing.T) {
	c := RGBA{R: 0.5, G: 0.25, B: 1, A: 1}

	got := c.Scale(0.5)
	want := RGBA{R: 0.25, G: 0.125, B: 0.5, A: 0.5}
	if !colorNear(got, want, colorEpsilon) {
		t.Errorf("Scale(0.5) = %+v, want %+v", got, want)
	}

	if got := c.Scale(4); got.B != 1 || got.A != 1 {
		t.Errorf("Scale(4) should clamp components to 1, got %+v", got)
	}
}
