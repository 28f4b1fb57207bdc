package tracing

import "testing"

func TestAssetChangeReasonStrings(t *testing.T) {
	seen := make(map[string]bool)
	for r := AssetChangeCreated; r <= AssetChangeDestroyed; r++ {
		if r.String() == "unknown" {
			t.Fatalf("reason %d has no name", r)
		}
		sig := r.EventSignature()
		if sig == "" {
			t.Fatalf("reason %s has no event signature", r)
		}
		if seen[sig] {
			t.Fatalf("duplicate event signature %s", sig)
		}
		seen[sig] = true
	}
	if AssetChangeReason(99).String() != "unknown" {
		t.Fatalf("unexpected name for out-of-range reason")
	}
	if AssetChangeUnspecified.EventSignature() != "" {
		t.Fatalf("unspecified reason must not emit")
	}
}
