package rate

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := NewMemory()
	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("a", 3, time.Minute)
		if !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if ok, wait := l.Allow("a", 3, time.Minute); ok {
		t.Error("fourth request should be denied")
	} else if wait <= 0 {
		t.Error("expected a positive wait until reset")
	}
}

func TestKeysIndependent(t *testing.T) {
	l := NewMemory()
	if ok, _ := l.Allow("a", 1, time.Minute); !ok {
		t.Fatal("first request for a should pass")
	}
	if ok, _ := l.Allow("b", 1, time.Minute); !ok {
		t.Error("request for b must not be throttled by a")
	}
}
