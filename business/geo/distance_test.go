package geo

import (
	"math"
	"testing"
)

var (
	newYork    = Point{Latitude: 40.7128, Longitude: -74.0060}
	losAngeles = Point{Latitude: 34.0522, Longitude: -118.2437}
)

func TestDistanceMiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		a, b      Point
		want, tol float64
	}{
		{"same point", newYork, newYork, 0, 0},
		// R = 3959 puts NYC-LA at 2445.7 mi
		{"new york to los angeles", newYork, losAngeles, 2451, 6},
		{"one degree of longitude at the equator", Point{0, 0}, Point{0, 1}, 69.1, 0.1},
		{"pole to pole", Point{90, 0}, Point{-90, 0}, math.Pi * EarthRadiusMiles, 1e-6},
		{"across the antimeridian", Point{0, 179.5}, Point{0, -179.5}, 69.1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMiles(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("DistanceMiles() = %.4f, want %.4f ± %v", got, tt.want, tt.tol)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	t.Parallel()

	if d1, d2 := DistanceMiles(newYork, losAngeles), DistanceMiles(losAngeles, newYork); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("asymmetric distance: %v vs %v", d1, d2)
	}
}

func TestPointValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{90, 180}, true},
		{Point{-90, -180}, true},
		{Point{90.0001, 0}, false},
		{Point{0, -180.5}, false},
		{Point{math.NaN(), 0}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
