package claim

import (
	"regexp"
	"testing"
	"time"
)

var claimNumberPattern = regexp.MustCompile(`^CLM-\d{14}\d{4}$`)

func TestNumberGenerator_Format(t *testing.T) {
	g := NewNumberGenerator(1)
	g.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 34, 56, 0, time.UTC)
	}

	n := g.Next()
	if !claimNumberPattern.MatchString(n) {
		t.Errorf("claim number %q does not match CLM-<14 digits><4 digits>", n)
	}
	if got, want := n[:18], "CLM-20260828123456"; got != want {
		t.Errorf("timestamp part = %q, want %q", got, want)
	}
	// the required CLM-\d{14} shape is contained in every number
	if !regexp.MustCompile(`CLM-\d{14}`).MatchString(n) {
		t.Errorf("claim number %q lost the CLM-<timestamp> shape", n)
	}
}

func TestNumberGenerator_SameSecondUnique(t *testing.T) {
	g := NewNumberGenerator(1)
	fixed := time.Date(2026, 8, 28, 12, 34, 56, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := g.Next()
		if seen[n] {
			t.Fatalf("duplicate claim number %q within the same second", n)
		}
		seen[n] = true
	}
}

func TestNumberGenerator_ConcurrentUnique(t *testing.T) {
	g := NewNumberGenerator(1)
	fixed := time.Date(2026, 8, 28, 12, 34, 56, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	const workers, perWorker = 8, 50
	out := make(chan string, workers*perWorker)
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < perWorker; i++ {
				out <- g.Next()
			}
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < workers*perWorker; i++ {
		n := <-out
		if seen[n] {
			t.Fatalf("duplicate claim number %q under concurrency", n)
		}
		seen[n] = true
	}
}

func TestNumberGenerator_NodeSeedsDiverge(t *testing.T) {
	fixed := time.Date(2026, 8, 28, 12, 34, 56, 0, time.UTC)
	a := NewNumberGenerator(1)
	b := NewNumberGenerator(2)
	a.now = func() time.Time { return fixed }
	b.now = func() time.Time { return fixed }

	if a.Next() == b.Next() {
		t.Error("generators on different nodes produced the same first number")
	}
}
