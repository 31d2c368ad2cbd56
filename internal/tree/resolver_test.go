package tree

import (
	"context"
	"errors"
	"testing"
)

func TestResolveChain(t *testing.T) {
	src := newFakeSource(
		story(1, 3, 2),
		comment(2, 1, 3),
		comment(3, 2, 4),
		comment(4, 3),
	)

	chain, err := ResolveChain(context.Background(), src, 4)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := []int64{2, 3, 4}
	if len(chain) != len(want) {
		t.Fatalf("expected chain %v, got %v", want, chain)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("expected chain %v, got %v", want, chain)
		}
	}
}

func TestResolveChainTargetIsRoot(t *testing.T) {
	src := newFakeSource(story(1, 0))

	chain, err := ResolveChain(context.Background(), src, 1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(chain) != 0 {
		t.Errorf("expected empty chain for the story itself, got %v", chain)
	}
}

func TestResolveChainBroken(t *testing.T) {
	// Node 3's parent 2 does not resolve.
	src := newFakeSource(comment(3, 2))

	_, err := ResolveChain(context.Background(), src, 3)
	if !errors.Is(err, ErrChainBroken) {
		t.Fatalf("expected ErrChainBroken, got %v", err)
	}
}

func TestResolveChainCycle(t *testing.T) {
	src := newFakeSource(
		comment(2, 3),
		comment(3, 2),
	)

	_, err := ResolveChain(context.Background(), src, 2)
	if !errors.Is(err, ErrChainBroken) {
		t.Fatalf("expected ErrChainBroken on a cyclic chain, got %v", err)
	}
}

func TestRequiredSet(t *testing.T) {
	set := RequiredSet([]int64{2, 3, 4})
	for _, id := range []int64{2, 3, 4} {
		if !set[id] {
			t.Errorf("expected %d in required set", id)
		}
	}
	if RequiredSet(nil) != nil {
		t.Error("expected nil set for empty chain")
	}
}
