package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	if d := HaversineKm(12.9716, 77.5946, 12.9716, 77.5946); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	ab := HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	ba := HaversineKm(13.0827, 80.2707, 12.9716, 77.5946)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f vs %f", ab, ba)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Bengaluru to Chennai is roughly 290 km great-circle.
	d := HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	if d < 280 || d > 300 {
		t.Fatalf("expected ~290 km, got %f", d)
	}
}

func TestDistanceKm_MissingCoordinates(t *testing.T) {
	lat := 12.9716
	lng := 77.5946
	if d := DistanceKm(&lat, &lng, nil, &lng); d != UnknownDistanceKm {
		t.Fatalf("expected sentinel distance, got %f", d)
	}
	if d := DistanceKm(&lat, &lng, &lat, &lng); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}
