package regionfx

import (
	"testing"

	"github.com/chewxy/math32"
)

const geomEpsilon = 1e-6

func normRectNear(a, b NormRect, eps float32) bool {
	return math32.Abs(a.MinX-b.MinX) <= eps &&
		math32.Abs(a.MinY-b.MinY) <= eps &&
		math32.Abs(a.MaxX-b.MaxX) <= eps &&
		math32.Abs(a.MaxY-b.MaxY) <= eps
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH float32
		rect       Rect
		want       NormRect
	}{
		{
			name: "centered region",
			srcW: 200, srcH: 100,
			rect: NewRect(50, 25, 100, 50),
			want: NormRect{MinX: 0.25, MinY: 0.25, MaxX: 0.75, MaxY: 0.75},
		},
		{
			name: "full surface",
			srcW: 640, srcH: 480,
			rect: NewRect(0, 0, 640, 480),
			want: NormRect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		},
		{
			name: "origin corner",
			srcW: 100, srcH: 100,
			rect: NewRect(0, 0, 25, 50),
			want: NormRect{MinX: 0, MinY: 0, MaxX: 0.25, MaxY: 0.5},
		},
		{
			name: "fractional pixel coordinates",
			srcW: 200, srcH: 200,
			rect: NewRect(10.5, 20.5, 29.5, 39.5),
			want: NormRect{MinX: 0.0525, MinY: 0.1025, MaxX: 0.2, MaxY: 0.3},
		},
		{
			name: "out of bounds extends past one",
			srcW: 100, srcH: 100,
			rect: NewRect(50, 50, 100, 100),
			want: NormRect{MinX: 0.5, MinY: 0.5, MaxX: 1.5, MaxY: 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.srcW, tt.srcH, tt.rect)
			if !normRectNear(got, tt.want, geomEpsilon) {
				t.Errorf("Normalize(%v, %v, %+v) = %+v, want %+v",
					tt.srcW, tt.srcH, tt.rect, got, tt.want)
			}
		})
	}
}

func TestNormalizeDegenerateSource(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH float32
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.srcW, tt.srcH, NewRect(10, 10, 50, 50))
			if got != EmptyNormRect() {
				t.Errorf("expected empty rect, got %+v", got)
			}
			if got.MinX != got.MinX || got.MaxY != got.MaxY {
				t.Error("normalized rect contains NaN")
			}
			if !got.IsEmpty() {
				t.Error("degenerate rect should report empty")
			}
		})
	}
}

func TestNormRectOriginSize(t *testing.T) {
	n := NormRect{MinX: 0.25, MinY: 0.25, MaxX: 0.75, MaxY: 0.75}
	nx, ny, nw, nh := n.OriginSize()
	if nx != 0.25 || ny != 0.25 || nw != 0.5 || nh != 0.5 {
		t.Errorf("OriginSize = (%v, %v, %v, %v), want (0.25, 0.25, 0.5, 0.5)",
			nx, ny, nw, nh)
	}
}

func TestNormRectContains(t *testing.T) {
	n := NormRect{MinX: 0.25, MinY: 0.25, MaxX: 0.75, MaxY: 0.75}

	tests := []struct {
		name string
		u, v float32
		want bool
	}{
		{"interior", 0.5, 0.5, true},
		{"min corner inclusive", 0.25, 0.25, true},
		{"max corner inclusive", 0.75, 0.75, true},
		{"on left edge", 0.25, 0.5, true},
		{"on bottom edge", 0.5, 0.75, true},
		{"just outside left", 0.2499, 0.5, false},
		{"just outside right", 0.7501, 0.5, false},
		{"outside above", 0.5, 0.1, false},
		{"outside corner", 0.9, 0.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Contains(tt.u, tt.v); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestSourceCoord(t *testing.T) {
	// Effect rect (50,25,100,50) on a 200x100 source.
	n := Normalize(200, 100, NewRect(50, 25, 100, 50))

	tests := []struct {
		name   string
		tx, ty float32
		wantU  float32
		wantV  float32
	}{
		{"top-left corner maps to crop origin", 0, 0, 0.25, 0.25},
		{"bottom-right corner maps to crop max", 1, 1, 0.75, 0.75},
		{"center maps to crop center", 0.5, 0.5, 0.5, 0.5},
		{"quarter point", 0.25, 0.75, 0.375, 0.625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := SourceCoord(n, tt.tx, tt.ty)
			if math32.Abs(u-tt.wantU) > geomEpsilon || math32.Abs(v-tt.wantV) > geomEpsilon {
				t.Errorf("SourceCoord(%v, %v) = (%v, %v), want (%v, %v)",
					tt.tx, tt.ty, u, v, tt.wantU, tt.wantV)
			}
		})
	}
}

func TestSourceCoordNeverLocal(t *testing.T) {
	// The remap must resolve into the crop, never into the quad's own
	// local [0,1] space. For a crop strictly inside the source, every
	// remapped coordinate stays strictly inside the crop bounds.
	n := Normalize(200, 100, NewRect(50, 25, 100, 50))

	for _, tx := range []float32{0.1, 0.5, 0.9} {
		for _, ty := range []float32{0.1, 0.5, 0.9} {
			u, v := SourceCoord(n, tx, ty)
			if u < n.MinX || u > n.MaxX || v < n.MinY || v > n.MaxY {
				t.Errorf("SourceCoord(%v, %v) = (%v, %v) escapes crop %+v",
					tx, ty, u, v, n)
			}
			if u == tx && v == ty && tx != 0.5 {
				t.Errorf("SourceCoord(%v, %v) returned the local coordinate unchanged", tx, ty)
			}
		}
	}
}

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"normal", NewRect(0, 0, 10, 10), false},
		{"zero width", NewRect(0, 0, 0, 10), true},
		{"zero height", NewRect(0, 0, 10, 0), true},
		{"negative width", NewRect(0, 0, -5, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty(%+v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}
