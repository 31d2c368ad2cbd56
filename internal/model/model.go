package model

// Item is a raw record from the item source: a story, comment, job or poll.
// Kids is the authoritative ordered child list; it is set even when the
// children have not been fetched yet.
type Item struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	By          string  `json:"by,omitempty"`
	Time        int64   `json:"time,omitempty"`
	Text        string  `json:"text,omitempty"`
	Title       string  `json:"title,omitempty"`
	URL         string  `json:"url,omitempty"`
	Score       int     `json:"score,omitempty"`
	Parent      int64   `json:"parent,omitempty"`
	Kids        []int64 `json:"kids,omitempty"`
	Descendants int     `json:"descendants,omitempty"`
	Dead        bool    `json:"dead,omitempty"`
	Deleted     bool    `json:"deleted,omitempty"`
}

// CommentNode is one materialized comment. ChildIDs is the full ordered
// child list from the source; Children may be a strict subset of it when a
// branch was cut at the depth ceiling or has not been paged in yet.
type CommentNode struct {
	ID        int64
	Author    string
	BodyHTML  string
	CreatedAt int64
	Depth     int
	ChildIDs  []int64
	Children  []*CommentNode

	// HasMoreReplies is set when recursion stopped at the depth ceiling
	// while ChildIDs was non-empty. It is not set when the children were
	// fetched and found dead, deleted or missing.
	HasMoreReplies bool
}

// StoryRoot is the item under discussion.
type StoryRoot struct {
	ID               int64
	Title            string
	Author           string
	URL              string
	CreatedAt        int64
	TotalDescendants int
	TopLevelChildIDs []int64
}

// ViewMode selects the presentation order of the materialized forest.
type ViewMode string

const (
	ViewNested  ViewMode = "nested"
	ViewRecency ViewMode = "recency"
)

// NodeView is a render-ready row: a node plus the transient flags held by
// the tree store rather than on the node itself.
type NodeView struct {
	Node        *CommentNode
	Collapsed   bool
	Highlighted bool
	// HiddenReplies is the reply count shown on a collapsed header.
	HiddenReplies int
	// Context is only set in recency order: a snippet of the parent
	// comment, or the story title for top-level comments.
	Context string
}

// Snapshot is the observable state handed to consumers after every
// operation.
type Snapshot struct {
	Story           *StoryRoot
	TopLevel        []*CommentNode
	LoadedTotal     int
	HasMoreTopLevel bool
	IsLoadingMore   bool
	Mode            ViewMode
}

// SearchMatch is one hit from a substring search over the materialized
// forest, with the matched term wrapped for highlighting.
type SearchMatch struct {
	Node            *CommentNode
	AuthorHighlight string
	BodyHighlight   string
}

// Bookmark is a story saved by the local user.
type Bookmark struct {
	StoryID   int64
	Title     string
	URL       string
	CreatedAt int64
}

// SeenStory records that a story was opened locally.
type SeenStory struct {
	StoryID int64
	SeenAt  int64
}
