// Package engine drives the incremental synchronization of one story's
// discussion tree: opening a story around an optional target node, paging
// in more top-level comments, force-loading depth-cut branches, and the
// collapse/search/view operations over the materialized forest.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/burrowhq/burrow/internal/hn"
	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/tree"
	"github.com/burrowhq/burrow/internal/view"
)

var (
	// ErrNoStory is returned by operations invoked with no story open.
	ErrNoStory = errors.New("no story open")
	// ErrClosed is returned when the story was closed while an operation
	// was in flight; its partial results were discarded.
	ErrClosed = errors.New("story closed")
	// ErrUnknownNode is returned when a node id is not in the forest.
	ErrUnknownNode = errors.New("unknown node")
)

// HighlightSource looks up the node ids to mark highlighted for a story.
// Absence and failure both degrade to no highlights.
type HighlightSource interface {
	Highlights(ctx context.Context, storyID int64) ([]int64, error)
}

// Options tune one engine. Zero values fall back to the defaults below.
type Options struct {
	PageSize   int
	MaxDepth   int
	FetchLimit int
	Highlights HighlightSource
	Logger     *slog.Logger
}

const (
	defaultPageSize   = 8
	defaultMaxDepth   = 5
	defaultFetchLimit = 16
)

// Engine materializes and serves the discussion tree of a single story.
// All methods are safe for concurrent use; merges are serialized behind the
// engine mutex, and the per-operation in-flight guards make repeated
// triggers of the same load a no-op while one is running.
type Engine struct {
	src  hn.Source
	opts Options
	log  *slog.Logger

	mu sync.Mutex
	// gen changes on every open/close; an in-flight load from a previous
	// generation discards its results instead of merging.
	gen     int
	cancel  context.CancelFunc
	lifeCtx context.Context

	store     *tree.Store
	mat       *tree.Materializer
	mode      model.ViewMode
	opening   bool
	paging    bool
	exhausted bool
}

func New(src hn.Source, opts Options) *Engine {
	if opts.PageSize < 1 {
		opts.PageSize = defaultPageSize
	}
	if opts.MaxDepth < 1 {
		opts.MaxDepth = defaultMaxDepth
	}
	if opts.FetchLimit < 1 {
		opts.FetchLimit = defaultFetchLimit
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{src: src, opts: opts, log: log, mode: model.ViewNested}
}

// OpenStory fetches the root item, resolves the target's ancestor chain if
// a target is given, materializes the first page of top-level comments with
// the required branch forced open, and merges the result. A broken chain
// degrades to an unforced load. Calling OpenStory while a previous open is
// still running returns the current snapshot untouched.
func (e *Engine) OpenStory(ctx context.Context, rootID, targetID int64) (model.Snapshot, error) {
	e.mu.Lock()
	if e.opening {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}
	e.resetLocked()
	e.gen++
	gen := e.gen
	e.lifeCtx, e.cancel = context.WithCancel(context.Background())
	e.opening = true
	life := e.lifeCtx
	e.mu.Unlock()

	opCtx, done := joinContext(ctx, life)
	defer done()

	snap, err := e.open(opCtx, gen, rootID, targetID)
	e.mu.Lock()
	if gen == e.gen {
		e.opening = false
		if err == nil {
			snap = e.snapshotLocked()
		}
	} else if err == nil {
		err = ErrClosed
	}
	e.mu.Unlock()
	return snap, err
}

func (e *Engine) open(ctx context.Context, gen int, rootID, targetID int64) (model.Snapshot, error) {
	item, err := e.src.Item(ctx, rootID)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("open story %d: %w", rootID, err)
	}
	root := &model.StoryRoot{
		ID:               item.ID,
		Title:            item.Title,
		Author:           item.By,
		URL:              item.URL,
		CreatedAt:        item.Time,
		TotalDescendants: item.Descendants,
		TopLevelChildIDs: item.Kids,
	}

	var chain []int64
	if targetID != 0 && targetID != rootID {
		chain, err = tree.ResolveChain(ctx, e.src, targetID)
		if err != nil {
			if !errors.Is(err, tree.ErrChainBroken) {
				return model.Snapshot{}, err
			}
			// No forced path; show what loads normally.
			e.log.Warn("ancestor chain unresolved", "target", targetID, "err", err)
			chain = nil
		}
	}
	required := tree.RequiredSet(chain)

	page := root.TopLevelChildIDs
	if len(page) > e.opts.PageSize {
		page = page[:e.opts.PageSize]
	}
	batch := page
	if len(chain) > 0 && !containsID(page, chain[0]) {
		// The target's top-level ancestor must ride along with the first
		// page or the deep link would not resolve until some later page.
		batch = append(append([]int64{}, page...), chain[0])
	}

	mat := tree.NewMaterializer(e.src, e.opts.MaxDepth, e.opts.FetchLimit, e.log)
	forest, err := mat.Materialize(ctx, batch, 0, required, false)
	if err != nil {
		return model.Snapshot{}, err
	}

	var highlights []int64
	if e.opts.Highlights != nil {
		highlights, err = e.opts.Highlights.Highlights(ctx, rootID)
		if err != nil {
			e.log.Warn("highlight lookup failed", "story", rootID, "err", err)
			highlights = nil
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return model.Snapshot{}, ErrClosed
	}
	store := tree.NewStore(root)
	store.Merge(forest)
	store.AdvanceTopLevel(len(page))
	store.SetHighlights(highlights)
	e.store = store
	e.mat = mat
	e.mode = model.ViewNested
	e.exhausted = doneLoading(store)
	return model.Snapshot{}, nil
}

// LoadNextTopLevelPage materializes the next unfetched slice of top-level
// comment ids and merges it. It is a no-op while another load is in flight,
// and it fails closed: a page of previously-unseen ids that adds nothing to
// the merged total marks pagination exhausted rather than retrying forever.
func (e *Engine) LoadNextTopLevelPage(ctx context.Context) (model.Snapshot, error) {
	e.mu.Lock()
	if e.store == nil {
		e.mu.Unlock()
		return model.Snapshot{}, ErrNoStory
	}
	if e.paging || e.opening || e.exhausted || !e.store.HasMoreTopLevel() {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}
	gen := e.gen
	all := e.store.Story().TopLevelChildIDs
	offset := e.store.ConsumedTopLevel()
	end := offset + e.opts.PageSize
	if end > len(all) {
		end = len(all)
	}
	page := all[offset:end]
	// A deep-link open may have pulled a later top-level branch in early;
	// a page made entirely of such already-merged ids is expected to add
	// nothing and must not look like a stalled source.
	hadUnseen := false
	for _, id := range page {
		if e.store.Node(id) == nil {
			hadUnseen = true
			break
		}
	}
	prevTotal := e.store.LoadedTotal()
	mat := e.mat
	life := e.lifeCtx
	e.paging = true
	e.mu.Unlock()

	opCtx, done := joinContext(ctx, life)
	defer done()

	forest, err := mat.Materialize(opCtx, page, 0, nil, false)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return model.Snapshot{}, ErrClosed
	}
	e.paging = false
	if err != nil {
		return e.snapshotLocked(), err
	}

	e.store.Merge(forest)
	e.store.AdvanceTopLevel(len(page))
	if hadUnseen && e.store.LoadedTotal() <= prevTotal {
		// Circuit breaker: the source returned nothing usable for ids it
		// had never served before.
		e.exhausted = true
	}
	if doneLoading(e.store) {
		e.exhausted = true
	}
	return e.snapshotLocked(), nil
}

// LoadDeeperReplies force-materializes one depth-cut node's full subtree
// and merges it under that node, clearing its more-replies marker. The rest
// of the forest is untouched.
func (e *Engine) LoadDeeperReplies(ctx context.Context, nodeID int64) (model.Snapshot, error) {
	e.mu.Lock()
	if e.store == nil {
		e.mu.Unlock()
		return model.Snapshot{}, ErrNoStory
	}
	if e.paging || e.opening {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}
	node := e.store.Node(nodeID)
	if node == nil {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrUnknownNode
	}
	if len(node.ChildIDs) == 0 {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}
	gen := e.gen
	childIDs := node.ChildIDs
	depth := node.Depth
	mat := e.mat
	life := e.lifeCtx
	e.paging = true
	e.mu.Unlock()

	opCtx, done := joinContext(ctx, life)
	defer done()

	children, err := mat.Materialize(opCtx, childIDs, depth+1, nil, true)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return model.Snapshot{}, ErrClosed
	}
	e.paging = false
	if err != nil {
		return e.snapshotLocked(), err
	}
	e.store.MergeChildren(nodeID, children)
	return e.snapshotLocked(), nil
}

// ToggleCollapse flips one node between expanded and collapsed.
func (e *Engine) ToggleCollapse(nodeID int64) (model.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == nil {
		return model.Snapshot{}, ErrNoStory
	}
	e.store.ToggleCollapse(nodeID)
	return e.snapshotLocked(), nil
}

// CollapseThread collapses the entire root-level branch containing nodeID.
func (e *Engine) CollapseThread(nodeID int64) (model.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == nil {
		return model.Snapshot{}, ErrNoStory
	}
	e.store.CollapseThread(nodeID)
	return e.snapshotLocked(), nil
}

// ExpandThread reverses a prior CollapseThread on the branch containing
// nodeID, reopening exactly the nodes that action collapsed.
func (e *Engine) ExpandThread(nodeID int64) (model.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == nil {
		return model.Snapshot{}, ErrNoStory
	}
	e.store.ExpandThread(nodeID)
	return e.snapshotLocked(), nil
}

// SetViewMode switches between nested and recency presentation.
func (e *Engine) SetViewMode(mode model.ViewMode) (model.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if mode != model.ViewNested && mode != model.ViewRecency {
		return e.snapshotLocked(), fmt.Errorf("unknown view mode %q", mode)
	}
	e.mode = mode
	return e.snapshotLocked(), nil
}

// Rows projects the forest in the current view mode.
func (e *Engine) Rows() []model.NodeView {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == nil {
		return nil
	}
	if e.mode == model.ViewRecency {
		return view.Recency(e.store)
	}
	return view.Nested(e.store)
}

// Search runs a case-insensitive substring search over the materialized
// forest. It never queries the item source.
func (e *Engine) Search(term string) []model.SearchMatch {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == nil {
		return nil
	}
	return view.Search(e.store, term)
}

// CloseStory aborts every outstanding fetch tied to the open story and
// discards the tree. In-flight operations observe the generation change and
// drop their partial results; nothing is merged after close.
func (e *Engine) CloseStory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.resetLocked()
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) resetLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.lifeCtx = nil
	e.store = nil
	e.mat = nil
	e.opening = false
	e.paging = false
	e.exhausted = false
	e.mode = model.ViewNested
}

func (e *Engine) snapshotLocked() model.Snapshot {
	snap := model.Snapshot{
		Mode:          e.mode,
		IsLoadingMore: e.opening || e.paging,
	}
	if e.store != nil {
		snap.Story = e.store.Story()
		snap.TopLevel = e.store.Roots()
		snap.LoadedTotal = e.store.LoadedTotal()
		snap.HasMoreTopLevel = e.store.HasMoreTopLevel() && !e.exhausted
	}
	return snap
}

// doneLoading reports whether the authoritative descendant count says the
// whole discussion is materialized.
func doneLoading(s *tree.Store) bool {
	story := s.Story()
	if story.TotalDescendants <= 0 {
		return false
	}
	return s.LoadedTotal() >= story.TotalDescendants
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// joinContext derives an operation context cancelled by either the caller's
// context or the story lifecycle context.
func joinContext(ctx, life context.Context) (context.Context, context.CancelFunc) {
	if life == nil {
		return context.WithCancel(ctx)
	}
	opCtx, cancel := context.WithCancel(life)
	stop := context.AfterFunc(ctx, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}
