package tree

import (
	"github.com/burrowhq/burrow/internal/model"
)

// Store is the authoritative forest of materialized nodes for one open
// story, plus the transient view state keyed by node id. The forest is
// indexed by id so every structural update is a map operation instead of a
// recursive rebuild. All mutations flow through Merge or MergeChildren; the
// store itself does no fetching.
//
// A Store is not safe for concurrent use; the engine serializes access.
type Store struct {
	story *model.StoryRoot
	roots []*model.CommentNode

	nodes  map[int64]*model.CommentNode
	parent map[int64]int64

	collapsed   map[int64]bool
	highlighted map[int64]bool
	// threadCollapsed records, per root-level ancestor, exactly which ids a
	// collapse-thread action set, so expand-thread reverses only those.
	threadCollapsed map[int64][]int64

	consumedTopLevel int
	loadedTotal      int
}

func NewStore(story *model.StoryRoot) *Store {
	return &Store{
		story:           story,
		nodes:           make(map[int64]*model.CommentNode),
		parent:          make(map[int64]int64),
		collapsed:       make(map[int64]bool),
		highlighted:     make(map[int64]bool),
		threadCollapsed: make(map[int64][]int64),
	}
}

func (s *Store) Story() *model.StoryRoot { return s.story }

// Roots returns the top-level nodes in source order.
func (s *Store) Roots() []*model.CommentNode { return s.roots }

// Node returns the materialized node with the given id, or nil.
func (s *Store) Node(id int64) *model.CommentNode { return s.nodes[id] }

// LoadedTotal is the count of all materialized nodes, recomputed after
// every merge.
func (s *Store) LoadedTotal() int { return s.loadedTotal }

// ConsumedTopLevel is how many of the story's top-level child ids have been
// through a materialization attempt, including ids that were dropped.
func (s *Store) ConsumedTopLevel() int { return s.consumedTopLevel }

// AdvanceTopLevel records that n more top-level ids were attempted.
func (s *Store) AdvanceTopLevel(n int) {
	s.consumedTopLevel += n
	if s.consumedTopLevel > len(s.story.TopLevelChildIDs) {
		s.consumedTopLevel = len(s.story.TopLevelChildIDs)
	}
}

// HasMoreTopLevel reports whether unconsumed top-level ids remain.
func (s *Store) HasMoreTopLevel() bool {
	return s.consumedTopLevel < len(s.story.TopLevelChildIDs)
}

// Merge folds an incoming forest of top-level nodes into the store. A node
// present in both keeps its existing identity and order but gains any
// newly discovered children; a node present only in the incoming forest is
// appended. Merging a forest with itself is a no-op, so overlapping loads
// cannot duplicate nodes.
func (s *Store) Merge(incoming []*model.CommentNode) {
	s.roots = s.mergeLists(s.roots, incoming)
	s.recount()
}

// MergeChildren folds freshly materialized children into one node's child
// list, leaving the rest of the forest untouched, and clears the node's
// depth-cut marker. It reports false for an unknown node id.
func (s *Store) MergeChildren(id int64, children []*model.CommentNode) bool {
	node, ok := s.nodes[id]
	if !ok {
		return false
	}
	for _, child := range children {
		child.Depth = node.Depth + 1
	}
	node.Children = s.mergeInto(node, node.Children, children)
	node.HasMoreReplies = false
	s.recount()
	return true
}

func (s *Store) mergeLists(existing, incoming []*model.CommentNode) []*model.CommentNode {
	return s.mergeInto(nil, existing, incoming)
}

func (s *Store) mergeInto(parent *model.CommentNode, existing, incoming []*model.CommentNode) []*model.CommentNode {
	byID := make(map[int64]*model.CommentNode, len(existing))
	for _, n := range existing {
		byID[n.ID] = n
	}
	for _, inc := range incoming {
		ex, ok := byID[inc.ID]
		if !ok {
			s.index(inc, parent)
			existing = append(existing, inc)
			byID[inc.ID] = inc
			continue
		}
		if len(inc.ChildIDs) > len(ex.ChildIDs) {
			ex.ChildIDs = inc.ChildIDs
		}
		ex.Children = s.mergeInto(ex, ex.Children, inc.Children)
		// Both sides must still believe the branch is depth-cut; a side
		// that recursed (even into nothing) clears the marker.
		ex.HasMoreReplies = ex.HasMoreReplies && inc.HasMoreReplies
	}
	return existing
}

// index registers a whole incoming subtree in the id maps. The subtree's
// nodes are new to the forest by construction.
func (s *Store) index(node *model.CommentNode, parent *model.CommentNode) {
	s.nodes[node.ID] = node
	if parent != nil {
		s.parent[node.ID] = parent.ID
	} else {
		delete(s.parent, node.ID)
	}
	for _, child := range node.Children {
		s.index(child, node)
	}
}

func (s *Store) recount() {
	total := 0
	var walk func(nodes []*model.CommentNode)
	walk = func(nodes []*model.CommentNode) {
		for _, n := range nodes {
			total++
			walk(n.Children)
		}
	}
	walk(s.roots)
	s.loadedTotal = total
}

// SubtreeSize counts a node and all its materialized descendants.
func (s *Store) SubtreeSize(id int64) int {
	node, ok := s.nodes[id]
	if !ok {
		return 0
	}
	count := 0
	var walk func(n *model.CommentNode)
	walk = func(n *model.CommentNode) {
		count++
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(node)
	return count
}

// ToggleCollapse flips the collapse state of one node.
func (s *Store) ToggleCollapse(id int64) {
	if _, ok := s.nodes[id]; !ok {
		return
	}
	if s.collapsed[id] {
		delete(s.collapsed, id)
	} else {
		s.collapsed[id] = true
	}
}

// IsCollapsed reports whether a node's children are hidden.
func (s *Store) IsCollapsed(id int64) bool { return s.collapsed[id] }

// RootAncestor walks parent pointers up to the node's top-level ancestor.
func (s *Store) RootAncestor(id int64) (int64, bool) {
	if _, ok := s.nodes[id]; !ok {
		return 0, false
	}
	cur := id
	for {
		p, ok := s.parent[cur]
		if !ok {
			return cur, true
		}
		cur = p
	}
}

// CollapseThread collapses the whole root-level branch containing id: the
// top-level ancestor and every materialized descendant. Only the ids this
// action actually collapsed are recorded, so ExpandThread never reopens a
// node the user collapsed independently.
func (s *Store) CollapseThread(id int64) {
	rootID, ok := s.RootAncestor(id)
	if !ok {
		return
	}
	if _, done := s.threadCollapsed[rootID]; done {
		return
	}

	var added []int64
	var walk func(n *model.CommentNode)
	walk = func(n *model.CommentNode) {
		if !s.collapsed[n.ID] {
			s.collapsed[n.ID] = true
			added = append(added, n.ID)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.nodes[rootID])
	s.threadCollapsed[rootID] = added
}

// ExpandThread reverses a prior CollapseThread on the branch containing id,
// restoring exactly the set of ids that action collapsed.
func (s *Store) ExpandThread(id int64) {
	rootID, ok := s.RootAncestor(id)
	if !ok {
		return
	}
	added, done := s.threadCollapsed[rootID]
	if !done {
		return
	}
	for _, nid := range added {
		delete(s.collapsed, nid)
	}
	delete(s.threadCollapsed, rootID)
}

// IsThreadCollapsed reports whether the branch containing id is currently
// thread-collapsed.
func (s *Store) IsThreadCollapsed(id int64) bool {
	rootID, ok := s.RootAncestor(id)
	if !ok {
		return false
	}
	_, done := s.threadCollapsed[rootID]
	return done
}

// SetHighlights marks the given ids highlighted. Unknown ids are kept; the
// node may be materialized by a later load.
func (s *Store) SetHighlights(ids []int64) {
	for _, id := range ids {
		s.highlighted[id] = true
	}
}

// IsHighlighted reports whether a node is highlight-marked.
func (s *Store) IsHighlighted(id int64) bool { return s.highlighted[id] }
