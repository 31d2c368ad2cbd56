package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeenLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen, err := s.IsSeen(ctx, 101)
	if err != nil {
		t.Fatalf("is seen: %v", err)
	}
	if seen {
		t.Fatal("story should not be seen before marking")
	}

	if err := s.MarkSeen(ctx, 101, 5000); err != nil {
		t.Fatalf("mark seen: %v", err)
	}
	seen, err = s.IsSeen(ctx, 101)
	if err != nil {
		t.Fatalf("is seen: %v", err)
	}
	if !seen {
		t.Fatal("story should be seen after marking")
	}

	// Marking again updates the timestamp instead of failing.
	if err := s.MarkSeen(ctx, 101, 6000); err != nil {
		t.Fatalf("re-mark seen: %v", err)
	}

	list, err := s.ListSeen(ctx, 10)
	if err != nil {
		t.Fatalf("list seen: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 seen story, got %d", len(list))
	}
	if list[0].SeenAt != 6000 {
		t.Errorf("expected updated seen_at 6000, got %d", list[0].SeenAt)
	}
}

func TestListSeenOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, at := range []int64{300, 100, 200} {
		if err := s.MarkSeen(ctx, int64(i+1), at); err != nil {
			t.Fatalf("mark seen: %v", err)
		}
	}

	list, err := s.ListSeen(ctx, 10)
	if err != nil {
		t.Fatalf("list seen: %v", err)
	}
	want := []int64{1, 3, 2}
	for i, id := range want {
		if list[i].StoryID != id {
			t.Fatalf("expected most-recent-first order %v, got position %d = %d", want, i, list[i].StoryID)
		}
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := &model.Bookmark{StoryID: 42, Title: "Show HN: a thing", URL: "https://example.com", CreatedAt: 1000}
	if err := s.AddBookmark(ctx, b); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}

	err := s.AddBookmark(ctx, b)
	if !errors.Is(err, store.ErrDuplicateBookmark) {
		t.Fatalf("expected ErrDuplicateBookmark, got %v", err)
	}

	list, err := s.ListBookmarks(ctx, 10)
	if err != nil {
		t.Fatalf("list bookmarks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(list))
	}
	if list[0].Title != "Show HN: a thing" || list[0].URL != "https://example.com" {
		t.Errorf("unexpected bookmark contents: %+v", list[0])
	}

	if err := s.RemoveBookmark(ctx, 42); err != nil {
		t.Fatalf("remove bookmark: %v", err)
	}
	err = s.RemoveBookmark(ctx, 42)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}
}

func TestBookmarkEmptyURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddBookmark(ctx, &model.Bookmark{StoryID: 7, Title: "Ask HN: no link", CreatedAt: 1}); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}
	list, err := s.ListBookmarks(ctx, 10)
	if err != nil {
		t.Fatalf("list bookmarks: %v", err)
	}
	if list[0].URL != "" {
		t.Errorf("expected empty URL round-trip, got %q", list[0].URL)
	}
}
