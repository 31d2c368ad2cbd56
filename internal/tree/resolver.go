package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/burrowhq/burrow/internal/hn"
)

// ErrChainBroken means the ancestor chain of a target id could not be
// resolved. Callers degrade to an unforced load instead of failing.
var ErrChainBroken = errors.New("ancestor chain broken")

// maxChainHops bounds the parent walk against cyclic or absurdly deep data.
const maxChainHops = 512

// ResolveChain walks parent pointers from targetID up to the story root and
// returns the chain ordered from the story's direct child down to targetID.
// The story id itself is not part of the chain.
func ResolveChain(ctx context.Context, src hn.Source, targetID int64) ([]int64, error) {
	var chain []int64
	cur := targetID
	for hops := 0; hops < maxChainHops; hops++ {
		item, err := src.Item(ctx, cur)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: id %d: %v", ErrChainBroken, cur, err)
		}
		if item.Type == "story" || item.Parent == 0 {
			// Reached the root; cur was never a comment in the chain.
			return chain, nil
		}
		chain = append([]int64{cur}, chain...)
		cur = item.Parent
	}
	return nil, fmt.Errorf("%w: exceeded %d hops from id %d", ErrChainBroken, maxChainHops, targetID)
}

// RequiredSet turns an ancestor chain into the lookup set used by the
// materializer's recursion rule.
func RequiredSet(chain []int64) map[int64]bool {
	if len(chain) == 0 {
		return nil
	}
	set := make(map[int64]bool, len(chain))
	for _, id := range chain {
		set[id] = true
	}
	return set
}
