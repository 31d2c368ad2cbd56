// Package store defines the persistence interfaces for local reader state:
// which stories have been seen and which are bookmarked. The engine itself
// is stateless across sessions; this is the only thing burrow writes to
// disk.
package store

import (
	"context"
	"errors"

	"github.com/burrowhq/burrow/internal/model"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateBookmark = errors.New("duplicate bookmark")
)

type Store interface {
	SeenStore
	BookmarkStore
	Close() error
}

type SeenStore interface {
	MarkSeen(ctx context.Context, storyID int64, at int64) error
	IsSeen(ctx context.Context, storyID int64) (bool, error)
	ListSeen(ctx context.Context, limit int) ([]model.SeenStory, error)
}

type BookmarkStore interface {
	AddBookmark(ctx context.Context, b *model.Bookmark) error
	RemoveBookmark(ctx context.Context, storyID int64) error
	ListBookmarks(ctx context.Context, limit int) ([]model.Bookmark, error)
}
