package middleware

import (
	"testing"
	"time"
)

func TestBodyHash(t *testing.T) {
	a := bodyHash([]byte(`{"amount":100}`))
	b := bodyHash([]byte(`{"amount":100}`))
	c := bodyHash([]byte(`{"amount":101}`))
	if a != b {
		t.Error("identical bodies hashed differently")
	}
	if a == c {
		t.Error("different bodies hashed identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if bodyHash(nil) != bodyHash([]byte{}) {
		t.Error("nil and empty body should hash the same")
	}
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/v1/deals/:deal_id/pause", "op123", "req456")
	want := "idemp:ax:post:/v1/deals/:deal_id/pause:op123:req456"
	if got != want {
		t.Fatalf("buildKey = %q, want %q", got, want)
	}
}

func TestValidReqID(t *testing.T) {
	valid := []string{
		"0123456789abcdef0123456789abcdef",
		"a3bb189e-8bf9-3888-9912-ace4e6543002",
		"  A3BB189E-8BF9-3888-9912-ACE4E6543002  ", // trimmed + lowercased
	}
	for _, id := range valid {
		if !validReqID(id) {
			t.Errorf("validReqID(%q) = false, want true", id)
		}
	}
	invalid := []string{
		"",
		"not-an-id",
		"0123456789abcdef0123456789abcde",        // 31 hex chars
		"a3bb189e-8bf9-9888-9912-ace4e6543002",   // bad version nibble
		"a3bb189e8bf9-3888-9912-ace4e6543002",    // malformed
	}
	for _, id := range invalid {
		if validReqID(id) {
			t.Errorf("validReqID(%q) = true, want false", id)
		}
	}
}

func TestParseRequestAt(t *testing.T) {
	// epoch seconds
	got, err := parseRequestAt("1736123456")
	if err != nil {
		t.Fatalf("epoch seconds: %v", err)
	}
	if got.Unix() != 1736123456 {
		t.Errorf("epoch seconds = %v", got)
	}

	// epoch milliseconds
	got, err = parseRequestAt("1736123456789")
	if err != nil {
		t.Fatalf("epoch ms: %v", err)
	}
	if got.UnixMilli() != 1736123456789 {
		t.Errorf("epoch ms = %v", got)
	}

	// RFC3339 with offset normalizes to UTC
	got, err = parseRequestAt("2024-06-01T12:00:00+02:00")
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if got.Location() != time.UTC || got.Hour() != 10 {
		t.Errorf("rfc3339 = %v, want 10:00 UTC", got)
	}

	for _, raw := range []string{"", "2024-06-01T12:00:00", "yesterday"} {
		if _, err := parseRequestAt(raw); err == nil {
			t.Errorf("parseRequestAt(%q) accepted", raw)
		}
	}
}
