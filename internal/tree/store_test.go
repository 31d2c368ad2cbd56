package tree

import (
	"context"
	"testing"

	"github.com/burrowhq/burrow/internal/model"
)

func testStory(descendants int, topLevel ...int64) *model.StoryRoot {
	return &model.StoryRoot{
		ID:               1,
		Title:            "a story",
		TotalDescendants: descendants,
		TopLevelChildIDs: topLevel,
	}
}

func node(id int64, depth int, children ...*model.CommentNode) *model.CommentNode {
	childIDs := make([]int64, len(children))
	for i, c := range children {
		childIDs[i] = c.ID
	}
	return &model.CommentNode{ID: id, Depth: depth, CreatedAt: 1000 + id, ChildIDs: childIDs, Children: children}
}

func TestMergeIdempotent(t *testing.T) {
	s := NewStore(testStory(3, 2, 5))
	forest := []*model.CommentNode{
		node(2, 0, node(3, 1, node(4, 2))),
		node(5, 0),
	}

	s.Merge(forest)
	if s.LoadedTotal() != 4 {
		t.Fatalf("expected 4 nodes, got %d", s.LoadedTotal())
	}

	// Merging an equal forest again changes nothing.
	again := []*model.CommentNode{
		node(2, 0, node(3, 1, node(4, 2))),
		node(5, 0),
	}
	s.Merge(again)

	if s.LoadedTotal() != 4 {
		t.Errorf("expected merge to be idempotent, got %d nodes", s.LoadedTotal())
	}
	if got := ids(s.Roots()); len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Errorf("expected roots [2 5], got %v", got)
	}
	// Identity preserved: node 3 is still the original pointer.
	if s.Node(3) == nil || s.Node(3) != s.Roots()[0].Children[0] {
		t.Error("expected existing node identity to survive the merge")
	}
}

func TestMergeAttachesNewChildren(t *testing.T) {
	s := NewStore(testStory(4, 2))
	s.Merge([]*model.CommentNode{node(2, 0, node(3, 1))})

	// A later overlapping load discovered another child under 2 and a
	// grandchild under 3.
	s.Merge([]*model.CommentNode{
		node(2, 0, node(3, 1, node(4, 2)), node(6, 1)),
	})

	root := s.Roots()[0]
	if got := ids(root.Children); len(got) != 2 || got[0] != 3 || got[1] != 6 {
		t.Fatalf("expected children [3 6] preserving existing order, got %v", got)
	}
	if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].ID != 4 {
		t.Error("expected grandchild 4 attached under existing node 3")
	}
	if s.LoadedTotal() != 4 {
		t.Errorf("expected 4 nodes after merge, got %d", s.LoadedTotal())
	}
}

func TestMergeNeverDuplicates(t *testing.T) {
	s := NewStore(testStory(5, 2, 5))

	// Overlapping batches sharing ids, merged in varying shapes.
	s.Merge([]*model.CommentNode{node(2, 0, node(3, 1))})
	s.Merge([]*model.CommentNode{node(5, 0), node(2, 0, node(3, 1, node(4, 2)))})
	s.Merge([]*model.CommentNode{node(2, 0, node(3, 1)), node(5, 0)})

	seen := make(map[int64]int)
	var walk func(nodes []*model.CommentNode)
	walk = func(nodes []*model.CommentNode) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Children)
		}
	}
	walk(s.Roots())

	for id, count := range seen {
		if count != 1 {
			t.Errorf("node %d appears %d times in the forest", id, count)
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct nodes, got %d", len(seen))
	}
}

func TestMergeClearsDepthCutWhenExplored(t *testing.T) {
	s := NewStore(testStory(2, 2))

	cut := node(2, 0)
	cut.ChildIDs = []int64{3}
	cut.HasMoreReplies = true
	s.Merge([]*model.CommentNode{cut})

	// A deeper load explored the branch.
	s.Merge([]*model.CommentNode{node(2, 0, node(3, 1))})

	if s.Node(2).HasMoreReplies {
		t.Error("expected depth-cut marker cleared once the branch was explored")
	}
}

func TestMergeChildren(t *testing.T) {
	s := NewStore(testStory(3, 2))
	cut := node(2, 0)
	cut.ChildIDs = []int64{3, 4}
	cut.HasMoreReplies = true
	s.Merge([]*model.CommentNode{cut})

	ok := s.MergeChildren(2, []*model.CommentNode{node(3, 0), node(4, 0)})
	if !ok {
		t.Fatal("expected MergeChildren to find node 2")
	}

	root := s.Node(2)
	if got := ids(root.Children); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("expected children [3 4], got %v", got)
	}
	if root.HasMoreReplies {
		t.Error("expected depth-cut marker cleared")
	}
	for _, c := range root.Children {
		if c.Depth != 1 {
			t.Errorf("expected child depth 1, got %d", c.Depth)
		}
	}
	if s.LoadedTotal() != 3 {
		t.Errorf("expected 3 nodes, got %d", s.LoadedTotal())
	}

	if s.MergeChildren(99, nil) {
		t.Error("expected MergeChildren to reject an unknown node")
	}
}

func TestTopLevelPaginationState(t *testing.T) {
	s := NewStore(testStory(7, 1, 2, 3, 4, 5, 6, 7))

	if !s.HasMoreTopLevel() {
		t.Fatal("expected more top-level ids before any load")
	}
	s.AdvanceTopLevel(5)
	if !s.HasMoreTopLevel() {
		t.Error("expected more top-level ids after first page")
	}
	s.AdvanceTopLevel(5)
	if s.HasMoreTopLevel() {
		t.Error("expected pagination exhausted")
	}
	if s.ConsumedTopLevel() != 7 {
		t.Errorf("expected consumed clamped to 7, got %d", s.ConsumedTopLevel())
	}
}

func TestToggleCollapse(t *testing.T) {
	s := NewStore(testStory(1, 2))
	s.Merge([]*model.CommentNode{node(2, 0)})

	s.ToggleCollapse(2)
	if !s.IsCollapsed(2) {
		t.Error("expected node collapsed")
	}
	s.ToggleCollapse(2)
	if s.IsCollapsed(2) {
		t.Error("expected node expanded")
	}

	// Unknown ids are ignored.
	s.ToggleCollapse(99)
	if s.IsCollapsed(99) {
		t.Error("unknown id must not be collapsible")
	}
}

func TestCollapseStateSurvivesMerge(t *testing.T) {
	s := NewStore(testStory(2, 2))
	s.Merge([]*model.CommentNode{node(2, 0)})
	s.ToggleCollapse(2)

	s.Merge([]*model.CommentNode{node(2, 0, node(3, 1))})

	if !s.IsCollapsed(2) {
		t.Error("expected collapse state to survive a merge")
	}
}

func TestThreadCollapseExpandSymmetry(t *testing.T) {
	s := NewStore(testStory(4, 2))
	s.Merge([]*model.CommentNode{
		node(2, 0, node(3, 1, node(4, 2)), node(5, 1)),
	})

	// Node 5 was collapsed by the user beforehand.
	s.ToggleCollapse(5)

	// Collapse the thread from a leaf; the whole branch under the
	// root-level ancestor goes dark.
	s.CollapseThread(4)
	for _, id := range []int64{2, 3, 4, 5} {
		if !s.IsCollapsed(id) {
			t.Errorf("expected node %d collapsed after thread collapse", id)
		}
	}
	if !s.IsThreadCollapsed(3) {
		t.Error("expected branch reported as thread-collapsed")
	}

	s.ExpandThread(3)
	for _, id := range []int64{2, 3, 4} {
		if s.IsCollapsed(id) {
			t.Errorf("expected node %d expanded after thread expand", id)
		}
	}
	// The independently collapsed node stays collapsed.
	if !s.IsCollapsed(5) {
		t.Error("expand-thread must not reopen an independently collapsed node")
	}
	if s.IsThreadCollapsed(3) {
		t.Error("expected thread-collapse record cleared")
	}
}

func TestRootAncestor(t *testing.T) {
	s := NewStore(testStory(3, 2))
	s.Merge([]*model.CommentNode{node(2, 0, node(3, 1, node(4, 2)))})

	for _, id := range []int64{2, 3, 4} {
		root, ok := s.RootAncestor(id)
		if !ok || root != 2 {
			t.Errorf("expected root ancestor 2 for %d, got %d (%v)", id, root, ok)
		}
	}
	if _, ok := s.RootAncestor(99); ok {
		t.Error("expected no ancestor for unknown id")
	}
}

func TestHighlights(t *testing.T) {
	s := NewStore(testStory(1, 2))
	s.Merge([]*model.CommentNode{node(2, 0)})

	s.SetHighlights([]int64{2, 77})
	if !s.IsHighlighted(2) {
		t.Error("expected node 2 highlighted")
	}
	if s.IsHighlighted(3) {
		t.Error("unexpected highlight on node 3")
	}
}

// Merge output must agree with what a materializer produces end to end.
func TestMaterializeThenMergeTwice(t *testing.T) {
	src := newFakeSource(
		comment(2, 1, 3),
		comment(3, 2),
		comment(5, 1),
	)
	m := NewMaterializer(src, 5, 8, nil)
	s := NewStore(testStory(3, 2, 5))

	for i := 0; i < 2; i++ {
		forest, err := m.Materialize(context.Background(), []int64{2, 5}, 0, nil, false)
		if err != nil {
			t.Fatalf("materialize: %v", err)
		}
		s.Merge(forest)
	}

	if s.LoadedTotal() != 3 {
		t.Errorf("expected 3 nodes after overlapping loads, got %d", s.LoadedTotal())
	}
}
