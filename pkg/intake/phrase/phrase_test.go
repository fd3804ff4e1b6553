package phrase

import (
	"strings"
	"testing"
)

func TestRandomAckNeverEmpty(t *testing.T) {
	p := NewRandom(1)
	for i := 0; i < 100; i++ {
		if p.Ack("") == "" {
			t.Fatal("Ack returned empty string")
		}
		if p.Ack("Ada") == "" {
			t.Fatal("Ack with name returned empty string")
		}
	}
}

func TestRandomAckWeavesNameIn(t *testing.T) {
	p := NewRandom(42)
	seen := false
	for i := 0; i < 50; i++ {
		if strings.Contains(p.Ack("Ada"), "Ada") {
			seen = true
			break
		}
	}
	if !seen {
		t.Error("named ack never produced across 50 draws")
	}
}

func TestStaticIsByteStable(t *testing.T) {
	p := Static("Got it.")
	if p.Ack("") != "Got it." || p.Ack("Ada") != "Got it." {
		t.Error("Static picker varied its output")
	}
}
