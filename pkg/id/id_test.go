package id

import (
	"regexp"
	"testing"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_Shape(t *testing.T) {
	got := NewID32()
	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got %q)", len(got), got)
	}
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
}

func TestNewID32_Unique(t *testing.T) {
	const n = 500
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := NewID32()
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id after %d draws: %q", i, v)
		}
		seen[v] = struct{}{}
	}
}
