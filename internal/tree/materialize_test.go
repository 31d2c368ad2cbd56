package tree

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/burrowhq/burrow/internal/hn"
	"github.com/burrowhq/burrow/internal/model"
)

// fakeSource serves items from a map, safe for concurrent lookups.
type fakeSource struct {
	mu    sync.Mutex
	items map[int64]model.Item
	calls int
}

func newFakeSource(items ...model.Item) *fakeSource {
	f := &fakeSource{items: make(map[int64]model.Item)}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeSource) Item(ctx context.Context, id int64) (model.Item, error) {
	if err := ctx.Err(); err != nil {
		return model.Item{}, err
	}
	f.mu.Lock()
	f.calls++
	item, ok := f.items[id]
	f.mu.Unlock()
	if !ok {
		return model.Item{}, hn.ErrNotFound
	}
	return item, nil
}

func comment(id, parent int64, kids ...int64) model.Item {
	return model.Item{ID: id, Type: "comment", By: "user", Time: 1000 + id, Text: "body", Parent: parent, Kids: kids}
}

func story(id int64, descendants int, kids ...int64) model.Item {
	return model.Item{ID: id, Type: "story", Title: "a story", Time: 1000, Kids: kids, Descendants: descendants}
}

func ids(nodes []*model.CommentNode) []int64 {
	out := make([]int64, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestMaterializeOrderPreserved(t *testing.T) {
	src := newFakeSource(comment(3, 1), comment(1, 1), comment(2, 1))
	m := NewMaterializer(src, 5, 8, nil)

	nodes, err := m.Materialize(context.Background(), []int64{3, 1, 2}, 0, nil, false)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	got := ids(nodes)
	want := []int64{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected input order %v, got %v", want, got)
		}
	}
}

func TestMaterializeDepthCutoff(t *testing.T) {
	// 1 -> 2 -> 3 -> 4, ceiling at depth 2.
	src := newFakeSource(
		comment(1, 0, 2),
		comment(2, 1, 3),
		comment(3, 2, 4),
		comment(4, 3),
	)
	m := NewMaterializer(src, 2, 8, nil)

	nodes, err := m.Materialize(context.Background(), []int64{1}, 0, nil, false)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	n3 := nodes[0].Children[0].Children[0]
	if n3.ID != 3 {
		t.Fatalf("expected node 3 at depth 2, got %d", n3.ID)
	}
	if len(n3.Children) != 0 {
		t.Errorf("expected depth-cut node to have no children, got %d", len(n3.Children))
	}
	if !n3.HasMoreReplies {
		t.Error("expected depth-cut node to be marked as having more replies")
	}
}

func TestMaterializeForceIgnoresDepth(t *testing.T) {
	src := newFakeSource(
		comment(1, 0, 2),
		comment(2, 1, 3),
		comment(3, 2, 4),
		comment(4, 3),
	)
	m := NewMaterializer(src, 1, 8, nil)

	nodes, err := m.Materialize(context.Background(), []int64{1}, 0, nil, true)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	cur := nodes[0]
	for _, want := range []int64{2, 3, 4} {
		if len(cur.Children) != 1 {
			t.Fatalf("expected forced branch to continue below %d", cur.ID)
		}
		cur = cur.Children[0]
		if cur.ID != want {
			t.Fatalf("expected node %d, got %d", want, cur.ID)
		}
	}
	if cur.HasMoreReplies {
		t.Error("leaf of forced branch must not claim more replies")
	}
}

func TestMaterializeRequiredPathBypassesDepth(t *testing.T) {
	// Two branches under 1; only the branch holding the target id stays
	// open past the ceiling.
	src := newFakeSource(
		comment(1, 0, 2, 10),
		comment(2, 1, 3),
		comment(3, 2, 4),
		comment(4, 3),
		comment(10, 1, 11),
		comment(11, 10, 12),
		comment(12, 11),
	)
	m := NewMaterializer(src, 1, 8, nil)

	required := map[int64]bool{2: true, 3: true, 4: true}
	nodes, err := m.Materialize(context.Background(), []int64{1}, 0, required, false)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	root := nodes[0]
	if len(root.Children) != 2 {
		t.Fatalf("expected both branches at depth 1, got %d", len(root.Children))
	}

	var forced, plain *model.CommentNode
	for _, c := range root.Children {
		if c.ID == 2 {
			forced = c
		}
		if c.ID == 10 {
			plain = c
		}
	}
	if forced == nil || plain == nil {
		t.Fatal("missing expected branches")
	}

	// Required branch reaches the target.
	if len(forced.Children) != 1 || forced.Children[0].ID != 3 {
		t.Fatal("required branch stopped before node 3")
	}
	if len(forced.Children[0].Children) != 1 || forced.Children[0].Children[0].ID != 4 {
		t.Fatal("required branch stopped before target node 4")
	}

	// Ordinary branch is depth-cut.
	if len(plain.Children) != 0 || !plain.HasMoreReplies {
		t.Error("expected ordinary branch to stop at the ceiling")
	}
}

func TestMaterializeDropsMissingAndDead(t *testing.T) {
	src := newFakeSource(
		comment(10, 0, 11, 12, 13),
		model.Item{ID: 12, Type: "comment", Parent: 10, Dead: true},
		// 11 missing entirely, 13 deleted.
		model.Item{ID: 13, Type: "comment", Parent: 10, Deleted: true},
	)
	m := NewMaterializer(src, 5, 8, nil)

	nodes, err := m.Materialize(context.Background(), []int64{10}, 0, nil, false)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	node := nodes[0]
	if len(node.Children) != 0 {
		t.Errorf("expected all children dropped, got %d", len(node.Children))
	}
	if node.HasMoreReplies {
		t.Error("children were tried and found gone, not depth-cut; flag must be clear")
	}
}

func TestMaterializeSanitizesBody(t *testing.T) {
	src := newFakeSource(model.Item{
		ID: 1, Type: "comment", By: "mallory", Time: 1,
		Text: `fine <script>alert("x")</script> text`,
	})
	m := NewMaterializer(src, 5, 8, nil)

	nodes, err := m.Materialize(context.Background(), []int64{1}, 0, nil, false)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	body := nodes[0].BodyHTML
	if len(body) == 0 {
		t.Fatal("expected body kept")
	}
	for _, bad := range []string{"<script", "alert"} {
		if strings.Contains(body, bad) {
			t.Errorf("expected %q scrubbed from body, got %q", bad, body)
		}
	}
}

func TestMaterializeCancelled(t *testing.T) {
	src := newFakeSource(comment(1, 0))
	m := NewMaterializer(src, 5, 8, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Materialize(ctx, []int64{1}, 0, nil, false); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
