// Package tree owns the materialized comment forest for one open story:
// fetching and converting raw items into nodes, the ancestor-chain
// resolution for deep links, and the merge/de-duplication bookkeeping.
package tree

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/burrowhq/burrow/internal/hn"
	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/sanitize"
)

// Materializer converts batches of raw item ids into comment nodes,
// recursing into children up to the configured depth ceiling unless a
// branch is forced or carries a required id.
type Materializer struct {
	src        hn.Source
	maxDepth   int
	fetchLimit int
	log        *slog.Logger
}

func NewMaterializer(src hn.Source, maxDepth, fetchLimit int, log *slog.Logger) *Materializer {
	if fetchLimit < 1 {
		fetchLimit = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Materializer{src: src, maxDepth: maxDepth, fetchLimit: fetchLimit, log: log}
}

// Materialize fetches every id in ids and builds nodes at the given depth.
// Output order matches input order, not fetch completion order. A failed or
// dead/deleted id is dropped from the batch. The only returned error is
// context cancellation.
func (m *Materializer) Materialize(ctx context.Context, ids []int64, depth int, required map[int64]bool, force bool) ([]*model.CommentNode, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := m.fetchBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	nodes := make([]*model.CommentNode, 0, len(items))
	for _, item := range items {
		node := &model.CommentNode{
			ID:        item.ID,
			Author:    item.By,
			BodyHTML:  sanitize.Body(item.Text),
			CreatedAt: item.Time,
			Depth:     depth,
			ChildIDs:  item.Kids,
		}
		if len(item.Kids) > 0 {
			if m.shouldRecurse(depth, item, required, force) {
				children, err := m.Materialize(ctx, item.Kids, depth+1, required, force)
				if err != nil {
					return nil, err
				}
				node.Children = children
			} else {
				node.HasMoreReplies = true
			}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// shouldRecurse applies the depth rule: ordinary branches stop at the
// ceiling, but a forced subtree or any node on a required path keeps going.
func (m *Materializer) shouldRecurse(depth int, item model.Item, required map[int64]bool, force bool) bool {
	if force || depth < m.maxDepth {
		return true
	}
	if required[item.ID] {
		return true
	}
	for _, kid := range item.Kids {
		if required[kid] {
			return true
		}
	}
	return false
}

// fetchBatch fetches sibling ids concurrently with a bounded fan-out and
// returns the surviving items in input order.
func (m *Materializer) fetchBatch(ctx context.Context, ids []int64) ([]model.Item, error) {
	results := make([]*model.Item, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.fetchLimit)
	for i, id := range ids {
		g.Go(func() error {
			item, err := m.src.Item(gctx, id)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				if !errors.Is(err, hn.ErrNotFound) {
					m.log.Warn("dropping item from batch", "id", id, "err", err)
				}
				return nil
			}
			results[i] = &item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(ids))
	for _, r := range results {
		if r == nil || r.Dead || r.Deleted {
			continue
		}
		items = append(items, *r)
	}
	return items, nil
}
