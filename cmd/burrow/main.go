package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/burrowhq/burrow/internal/config"
	"github.com/burrowhq/burrow/internal/engine"
	"github.com/burrowhq/burrow/internal/hn"
	"github.com/burrowhq/burrow/internal/httpapi"
	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/rate"
	"github.com/burrowhq/burrow/internal/store/sqlite"
	"github.com/burrowhq/burrow/internal/view"
)

func main() {
	if len(os.Args) < 2 {
		runServer()
		return
	}

	cmd := os.Args[1]

	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println("burrow v0.1.0")
		return
	}

	if strings.HasPrefix(cmd, "-") {
		runServer()
		return
	}

	args := os.Args[2:]

	switch cmd {
	case "server", "serve":
		runServer()
	case "read":
		cmdRead(args)
	case "search":
		cmdSearch(args)
	case "recent":
		cmdRecent(args)
	case "bookmark":
		cmdBookmark(args)
	case "bookmarks":
		cmdBookmarks(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`burrow - incremental Hacker News discussion reader

Usage: burrow <command> [options]

Commands:
  read                Read a story's discussion tree interactively
  search              Search loaded comments of a story
  recent              List recently opened stories
  bookmark            Save or remove a bookmark
  bookmarks           List bookmarks
  serve               Start the JSON API server (default if no command)

Examples:
  burrow read --story 8863
  burrow read --story 8863 --target 9224       # jump to a deep comment
  burrow search --story 8863 --q dropbox
  burrow bookmark --story 8863 --title "My YC app"
  burrow bookmark --rm 8863

Interactive read commands:
  m            load more top-level comments
  r <id>       load deeper replies under a comment
  c <id>       collapse or expand a comment
  t <id>       collapse the whole thread around a comment
  e <id>       expand a previously collapsed thread
  v            toggle nested / recency view
  /<term>      search loaded comments
  q            quit

Environment Variables:
  BURROW_ADDR             Listen address for serve mode (default: :8080)
  BURROW_DB               Database path (default: burrow.db)
  BURROW_API_BASE         Item API base URL (default: HN Firebase API)
  BURROW_HIGHLIGHT_BASE   Optional highlight service base URL
  BURROW_REDIS_URL        Optional redis URL for the item cache
  BURROW_PAGE_SIZE        Top-level comments per page (default: 8)
  BURROW_MAX_DEPTH        Auto-materialization depth ceiling (default: 5)
  BURROW_FETCH_LIMIT      Concurrent item fetches (default: 16)
  BURROW_CACHE_TTL        Redis cache TTL (default: 10m)`)
}

func runServer() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer st.Close()

	src, closeSrc, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("failed to build item source: %v", err)
	}
	defer closeSrc()

	client := hn.NewClient(cfg.APIBase)
	client.HighlightBase = cfg.HighlightBase

	limiter := rate.NewMemory()
	server := httpapi.NewServer(src, client, st, limiter, cfg, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("burrow listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

// buildSource wires the HTTP client, behind the redis cache when one is
// configured.
func buildSource(cfg config.Config) (hn.Source, func(), error) {
	client := hn.NewClient(cfg.APIBase)
	client.HighlightBase = cfg.HighlightBase
	if cfg.RedisURL == "" {
		return client, func() {}, nil
	}
	cache, err := hn.NewCache(client, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	return cache, func() { _ = cache.Close() }, nil
}

func cmdRead(args []string) {
	fs := newFlagSet("read")
	story := fs.Int64("story", 0, "Story ID (required)")
	target := fs.Int64("target", 0, "Comment ID to jump to")
	recency := fs.Bool("recency", false, "Start in recency order")
	fs.Parse(args)

	if *story == 0 {
		fmt.Fprintln(os.Stderr, "Error: --story is required")
		fmt.Fprintln(os.Stderr, "Usage: burrow read --story <id> [--target <id>] [--recency]")
		os.Exit(1)
	}

	cfg := config.Load()
	e, cleanup := newEngine(cfg)
	defer cleanup()

	ctx := context.Background()
	snap, err := e.OpenStory(ctx, *story, *target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening story: %v\n", err)
		os.Exit(1)
	}
	markSeen(cfg, *story)
	if *recency {
		snap, _ = e.SetViewMode(model.ViewRecency)
	}
	printSnapshot(snap, e.Rows())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			break
		}
		snap, ok := runReadCommand(ctx, e, line)
		if !ok {
			continue
		}
		printSnapshot(snap, e.Rows())
	}
	e.CloseStory()
}

func runReadCommand(ctx context.Context, e *engine.Engine, line string) (model.Snapshot, bool) {
	if strings.HasPrefix(line, "/") {
		term := strings.TrimPrefix(line, "/")
		matches := e.Search(term)
		if len(matches) == 0 {
			fmt.Println("no matches")
			return model.Snapshot{}, false
		}
		for _, m := range matches {
			body := m.BodyHighlight
			if body == "" {
				body = view.Snippet(m.Node.BodyHTML, 100)
			}
			author := m.Node.Author
			if m.AuthorHighlight != "" {
				author = m.AuthorHighlight
			}
			fmt.Printf("  #%d %s: %s\n", m.Node.ID, author, body)
		}
		return model.Snapshot{}, false
	}

	field := strings.Fields(line)
	var err error
	var snap model.Snapshot
	switch field[0] {
	case "m":
		snap, err = e.LoadNextTopLevelPage(ctx)
	case "v":
		if e.Snapshot().Mode == model.ViewNested {
			snap, err = e.SetViewMode(model.ViewRecency)
		} else {
			snap, err = e.SetViewMode(model.ViewNested)
		}
	case "r", "c", "t", "e":
		if len(field) < 2 {
			fmt.Println("need a comment id")
			return model.Snapshot{}, false
		}
		id, perr := strconv.ParseInt(field[1], 10, 64)
		if perr != nil {
			fmt.Println("bad comment id")
			return model.Snapshot{}, false
		}
		switch field[0] {
		case "r":
			snap, err = e.LoadDeeperReplies(ctx, id)
		case "c":
			snap, err = e.ToggleCollapse(id)
		case "t":
			snap, err = e.CollapseThread(id)
		case "e":
			snap, err = e.ExpandThread(id)
		}
	default:
		fmt.Println("unknown command (m, r <id>, c <id>, t <id>, e <id>, v, /term, q)")
		return model.Snapshot{}, false
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return model.Snapshot{}, false
	}
	return snap, true
}

func printSnapshot(snap model.Snapshot, rows []model.NodeView) {
	if snap.Story != nil {
		fmt.Printf("\n%s", snap.Story.Title)
		if snap.Story.URL != "" {
			fmt.Printf("  (%s)", snap.Story.URL)
		}
		fmt.Printf("\nby %s | %d comments | %d loaded\n\n", snap.Story.Author, snap.Story.TotalDescendants, snap.LoadedTotal)
	}
	for _, row := range rows {
		printRow(row, snap.Mode)
	}
	if snap.HasMoreTopLevel {
		fmt.Println("\n(m to load more top-level comments)")
	}
}

func printRow(row model.NodeView, mode model.ViewMode) {
	indent := strings.Repeat("  ", row.Node.Depth)
	if mode == model.ViewRecency {
		indent = ""
	}
	mark := " "
	if row.Highlighted {
		mark = "*"
	}
	if row.Collapsed {
		fmt.Printf("%s%s[+] #%d %s (%d hidden)\n", indent, mark, row.Node.ID, row.Node.Author, row.HiddenReplies)
		return
	}
	body := view.Snippet(row.Node.BodyHTML, 120)
	fmt.Printf("%s%s#%d %s: %s\n", indent, mark, row.Node.ID, row.Node.Author, body)
	if mode == model.ViewRecency && row.Context != "" {
		fmt.Printf("   re: %s\n", row.Context)
	}
	if row.Node.HasMoreReplies {
		fmt.Printf("%s  (r %d to load replies)\n", indent, row.Node.ID)
	}
}

func cmdSearch(args []string) {
	fs := newFlagSet("search")
	story := fs.Int64("story", 0, "Story ID (required)")
	query := fs.String("q", "", "Search term (required)")
	fs.Parse(args)

	if *story == 0 || *query == "" {
		fmt.Fprintln(os.Stderr, "Error: --story and --q are required")
		os.Exit(1)
	}

	cfg := config.Load()
	e, cleanup := newEngine(cfg)
	defer cleanup()

	if _, err := e.OpenStory(context.Background(), *story, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening story: %v\n", err)
		os.Exit(1)
	}
	matches := e.Search(*query)
	if len(matches) == 0 {
		fmt.Println("no matches in loaded comments")
		return
	}
	for _, m := range matches {
		body := m.BodyHighlight
		if body == "" {
			body = view.Snippet(m.Node.BodyHTML, 100)
		}
		fmt.Printf("#%d %s: %s\n", m.Node.ID, m.Node.Author, body)
	}
	e.CloseStory()
}

func cmdRecent(args []string) {
	fs := newFlagSet("recent")
	limit := fs.Int("limit", 20, "Max results")
	fs.Parse(args)

	cfg := config.Load()
	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	list, err := st.ListSeen(context.Background(), *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(list) == 0 {
		fmt.Println("no stories opened yet")
		return
	}
	for _, s := range list {
		fmt.Printf("%d  opened %s\n", s.StoryID, time.Unix(s.SeenAt, 0).Format("2006-01-02 15:04"))
	}
}

func cmdBookmark(args []string) {
	fs := newFlagSet("bookmark")
	story := fs.Int64("story", 0, "Story ID (required)")
	title := fs.String("title", "", "Story title")
	url := fs.String("url", "", "Story URL")
	rm := fs.Int64("rm", 0, "Remove the bookmark for this story ID")
	fs.Parse(args)

	cfg := config.Load()
	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx := context.Background()
	if *rm != 0 {
		if err := st.RemoveBookmark(ctx, *rm); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("removed bookmark for story %d\n", *rm)
		return
	}

	if *story == 0 {
		fmt.Fprintln(os.Stderr, "Error: --story is required")
		os.Exit(1)
	}

	// Fill in the title from the source when not given.
	if *title == "" {
		client := hn.NewClient(cfg.APIBase)
		if item, err := client.Item(ctx, *story); err == nil {
			*title = item.Title
			if *url == "" {
				*url = item.URL
			}
		}
	}
	if *title == "" {
		fmt.Fprintln(os.Stderr, "Error: --title is required (could not fetch it)")
		os.Exit(1)
	}

	b := &model.Bookmark{StoryID: *story, Title: *title, URL: *url, CreatedAt: time.Now().Unix()}
	if err := st.AddBookmark(ctx, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("bookmarked %d: %s\n", *story, *title)
}

func cmdBookmarks(args []string) {
	fs := newFlagSet("bookmarks")
	limit := fs.Int("limit", 50, "Max results")
	fs.Parse(args)

	cfg := config.Load()
	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	list, err := st.ListBookmarks(context.Background(), *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(list) == 0 {
		fmt.Println("no bookmarks")
		return
	}
	for _, b := range list {
		if b.URL != "" {
			fmt.Printf("%d  %s  (%s)\n", b.StoryID, b.Title, b.URL)
		} else {
			fmt.Printf("%d  %s\n", b.StoryID, b.Title)
		}
	}
}

func newEngine(cfg config.Config) (*engine.Engine, func()) {
	src, closeSrc, err := buildSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building item source: %v\n", err)
		os.Exit(1)
	}
	client := hn.NewClient(cfg.APIBase)
	client.HighlightBase = cfg.HighlightBase
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	e := engine.New(src, engine.Options{
		PageSize:   cfg.PageSize,
		MaxDepth:   cfg.MaxDepth,
		FetchLimit: cfg.FetchLimit,
		Highlights: client,
		Logger:     logger,
	})
	return e, closeSrc
}

func markSeen(cfg config.Config, storyID int64) {
	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return
	}
	defer st.Close()
	_ = st.MarkSeen(context.Background(), storyID, time.Now().Unix())
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}
