package redis

import (
	"strings"
	"testing"
)

func TestGeocodeKey(t *testing.T) {
	t.Parallel()

	a := GeocodeKey("New York")
	b := GeocodeKey("  new york ")
	if a != b {
		t.Errorf("GeocodeKey not normalized: %q != %q", a, b)
	}
	if !strings.HasPrefix(a, "geocode:") || len(a) != len("geocode:")+32 {
		t.Errorf("GeocodeKey() = %q, want geocode:<md5 hex>", a)
	}
	if GeocodeKey("Boston") == a {
		t.Error("distinct queries share a key")
	}
}
