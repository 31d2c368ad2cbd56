package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/burrowhq/burrow/internal/config"
	"github.com/burrowhq/burrow/internal/engine"
	"github.com/burrowhq/burrow/internal/hn"
	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/rate"
	"github.com/burrowhq/burrow/internal/store"

	_ "github.com/burrowhq/burrow/docs" // swagger docs

	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

type Server struct {
	src        hn.Source
	highlights engine.HighlightSource
	store      store.Store
	limiter    rate.Limiter
	cfg        config.Config
	log        *slog.Logger

	mu      sync.Mutex
	engines map[int64]*engine.Engine
}

func NewServer(src hn.Source, highlights engine.HighlightSource, st store.Store, limiter rate.Limiter, cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		src:        src,
		highlights: highlights,
		store:      st,
		limiter:    limiter,
		cfg:        cfg,
		log:        log,
		engines:    make(map[int64]*engine.Engine),
	}
}

// engineFor returns the session for a story, creating it on first use.
func (s *Server) engineFor(storyID int64) *engine.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.engines[storyID]; ok {
		return e
	}
	e := engine.New(s.src, engine.Options{
		PageSize:   s.cfg.PageSize,
		MaxDepth:   s.cfg.MaxDepth,
		FetchLimit: s.cfg.FetchLimit,
		Highlights: s.highlights,
		Logger:     s.log,
	})
	s.engines[storyID] = e
	return e
}

func (s *Server) dropEngine(storyID int64) (*engine.Engine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.engines[storyID]
	if ok {
		delete(s.engines, storyID)
	}
	return e, ok
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/swagger/") {
		httpSwagger.WrapHandler.ServeHTTP(w, r)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.handleAPI(w, r)
		return
	}
	notFound(w)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	segments := splitPath(path)

	switch {
	case len(segments) == 2 && segments[0] == "stories":
		if r.Method == http.MethodDelete {
			s.handleCloseStory(w, r, segments[1])
			return
		}
	case len(segments) == 3 && segments[0] == "stories" && segments[2] == "tree":
		if r.Method == http.MethodGet {
			s.handleTree(w, r, segments[1])
			return
		}
	case len(segments) == 3 && segments[0] == "stories" && segments[2] == "recency":
		if r.Method == http.MethodGet {
			s.handleRecency(w, r, segments[1])
			return
		}
	case len(segments) == 3 && segments[0] == "stories" && segments[2] == "search":
		if r.Method == http.MethodGet {
			s.handleSearch(w, r, segments[1])
			return
		}
	case len(segments) == 3 && segments[0] == "stories" && segments[2] == "more":
		if r.Method == http.MethodPost {
			s.handleMore(w, r, segments[1])
			return
		}
	case len(segments) == 4 && segments[0] == "stories" && segments[2] == "replies":
		if r.Method == http.MethodPost {
			s.handleReplies(w, r, segments[1], segments[3])
			return
		}
	case len(segments) == 4 && segments[0] == "stories" && segments[2] == "collapse":
		if r.Method == http.MethodPost {
			s.handleCollapse(w, r, segments[1], segments[3])
			return
		}
	case len(segments) == 5 && segments[0] == "stories" && segments[2] == "thread":
		if r.Method == http.MethodPost && segments[4] == "collapse" {
			s.handleThread(w, r, segments[1], segments[3], true)
			return
		}
		if r.Method == http.MethodPost && segments[4] == "expand" {
			s.handleThread(w, r, segments[1], segments[3], false)
			return
		}
	case len(segments) == 1 && segments[0] == "bookmarks":
		if r.Method == http.MethodGet {
			s.handleListBookmarks(w, r)
			return
		}
		if r.Method == http.MethodPost {
			s.handleAddBookmark(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "bookmarks":
		if r.Method == http.MethodDelete {
			s.handleRemoveBookmark(w, r, segments[1])
			return
		}
	case len(segments) == 1 && segments[0] == "seen":
		if r.Method == http.MethodGet {
			s.handleListSeen(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "openapi.json":
		if r.Method == http.MethodGet {
			s.serveOpenAPIJSON(w, r)
			return
		}
	}

	notFound(w)
}

// handleTree godoc
//
//	@Summary		Open a story and get the nested tree
//	@Description	Opens the story session if needed and returns the loaded rows in nested order. Pass target to force the path to a specific comment open regardless of depth.
//	@Tags			Stories
//	@Produce		json
//	@Param			id		path		int	true	"Story ID"
//	@Param			target	query		int	false	"Comment ID whose ancestor path must be loaded"
//	@Success		200		{object}	map[string]interface{}	"Snapshot with rows"
//	@Failure		404		{object}	map[string]string		"Story not found"
//	@Failure		429		{object}	map[string]string		"Rate limited"
//	@Router			/api/stories/{id}/tree [get]
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request, idStr string) {
	if !s.allowRateLimit(w, r, "tree", s.cfg.RateLimits.TreePerMinute) {
		return
	}
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	target := parseInt64Default(r.URL.Query().Get("target"), 0)

	e := s.engineFor(storyID)
	snap := e.Snapshot()
	if snap.Story == nil || target != 0 {
		snap, err = e.OpenStory(r.Context(), storyID, target)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		s.markSeen(r, storyID)
	}
	if snap.Mode != model.ViewNested {
		snap, _ = e.SetViewMode(model.ViewNested)
	}
	writeSnapshot(w, snap, e.Rows())
}

// handleRecency godoc
//
//	@Summary		Get the loaded tree in recency order
//	@Description	Flat list of loaded comments, newest first, each with its parent snippet for context. Collapse state is ignored in this order.
//	@Tags			Views
//	@Produce		json
//	@Param			id	path		int	true	"Story ID"
//	@Success		200	{object}	map[string]interface{}	"Snapshot with rows"
//	@Router			/api/stories/{id}/recency [get]
func (s *Server) handleRecency(w http.ResponseWriter, r *http.Request, idStr string) {
	if !s.allowRateLimit(w, r, "tree", s.cfg.RateLimits.TreePerMinute) {
		return
	}
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}

	e := s.engineFor(storyID)
	if e.Snapshot().Story == nil {
		if _, err := e.OpenStory(r.Context(), storyID, 0); err != nil {
			writeEngineError(w, err)
			return
		}
		s.markSeen(r, storyID)
	}
	snap, err := e.SetViewMode(model.ViewRecency)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSnapshot(w, snap, e.Rows())
}

// handleSearch godoc
//
//	@Summary		Search loaded comments
//	@Description	Case-insensitive substring search over authors and bodies of comments loaded so far. Never fetches from the source.
//	@Tags			Views
//	@Produce		json
//	@Param			id	path		int		true	"Story ID"
//	@Param			q	query		string	true	"Search term"
//	@Success		200	{object}	map[string]interface{}	"Matches"
//	@Failure		429	{object}	map[string]string		"Rate limited"
//	@Router			/api/stories/{id}/search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, idStr string) {
	if !s.allowRateLimit(w, r, "search", s.cfg.RateLimits.SearchPerMinute) {
		return
	}
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	term := r.URL.Query().Get("q")
	if strings.TrimSpace(term) == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing query"))
		return
	}

	e := s.engineFor(storyID)
	if e.Snapshot().Story == nil {
		if _, err := e.OpenStory(r.Context(), storyID, 0); err != nil {
			writeEngineError(w, err)
			return
		}
		s.markSeen(r, storyID)
	}

	matches := e.Search(term)
	out := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchJSON{
			ID:              m.Node.ID,
			Author:          m.Node.Author,
			AuthorHighlight: m.AuthorHighlight,
			BodyHighlight:   m.BodyHighlight,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": term, "matches": out})
}

// handleMore godoc
//
//	@Summary		Load the next page of top-level comments
//	@Tags			Stories
//	@Produce		json
//	@Param			id	path		int	true	"Story ID"
//	@Success		200	{object}	map[string]interface{}	"Updated snapshot"
//	@Router			/api/stories/{id}/more [post]
func (s *Server) handleMore(w http.ResponseWriter, r *http.Request, idStr string) {
	if !s.allowRateLimit(w, r, "tree", s.cfg.RateLimits.TreePerMinute) {
		return
	}
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	e := s.engineFor(storyID)
	snap, err := e.LoadNextTopLevelPage(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSnapshot(w, snap, e.Rows())
}

// handleReplies godoc
//
//	@Summary		Expand a branch below the depth ceiling
//	@Tags			Stories
//	@Produce		json
//	@Param			id		path		int	true	"Story ID"
//	@Param			node	path		int	true	"Comment ID to expand under"
//	@Success		200		{object}	map[string]interface{}	"Updated snapshot"
//	@Failure		404		{object}	map[string]string		"Unknown node"
//	@Router			/api/stories/{id}/replies/{node} [post]
func (s *Server) handleReplies(w http.ResponseWriter, r *http.Request, idStr, nodeStr string) {
	if !s.allowRateLimit(w, r, "tree", s.cfg.RateLimits.TreePerMinute) {
		return
	}
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	nodeID, err := strconv.ParseInt(nodeStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid node id"))
		return
	}
	e := s.engineFor(storyID)
	snap, err := e.LoadDeeperReplies(r.Context(), nodeID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSnapshot(w, snap, e.Rows())
}

// handleCollapse godoc
//
//	@Summary		Toggle collapse on a single comment
//	@Tags			Views
//	@Produce		json
//	@Param			id		path		int	true	"Story ID"
//	@Param			node	path		int	true	"Comment ID"
//	@Success		200		{object}	map[string]interface{}	"Updated snapshot"
//	@Router			/api/stories/{id}/collapse/{node} [post]
func (s *Server) handleCollapse(w http.ResponseWriter, r *http.Request, idStr, nodeStr string) {
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	nodeID, err := strconv.ParseInt(nodeStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid node id"))
		return
	}
	e := s.engineFor(storyID)
	snap, err := e.ToggleCollapse(nodeID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSnapshot(w, snap, e.Rows())
}

// handleThread godoc
//
//	@Summary		Collapse or expand a whole thread
//	@Description	Collapse walks up to the thread root and collapses every node under it that was not already collapsed; expand reverses exactly that set.
//	@Tags			Views
//	@Produce		json
//	@Param			id		path		int	true	"Story ID"
//	@Param			node	path		int	true	"Any comment inside the thread"
//	@Success		200		{object}	map[string]interface{}	"Updated snapshot"
//	@Router			/api/stories/{id}/thread/{node}/collapse [post]
func (s *Server) handleThread(w http.ResponseWriter, r *http.Request, idStr, nodeStr string, collapse bool) {
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	nodeID, err := strconv.ParseInt(nodeStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid node id"))
		return
	}
	e := s.engineFor(storyID)
	var snap model.Snapshot
	if collapse {
		snap, err = e.CollapseThread(nodeID)
	} else {
		snap, err = e.ExpandThread(nodeID)
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSnapshot(w, snap, e.Rows())
}

// handleCloseStory godoc
//
//	@Summary		Close a story session
//	@Description	Discards the session. Any load still in flight for it is dropped on completion.
//	@Tags			Stories
//	@Produce		json
//	@Param			id	path		int	true	"Story ID"
//	@Success		200	{object}	map[string]bool
//	@Router			/api/stories/{id} [delete]
func (s *Server) handleCloseStory(w http.ResponseWriter, r *http.Request, idStr string) {
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	if e, ok := s.dropEngine(storyID); ok {
		e.CloseStory()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleListBookmarks godoc
//
//	@Summary	List bookmarks
//	@Tags		Bookmarks
//	@Produce	json
//	@Param		limit	query		int	false	"Max results"	default(50)
//	@Success	200		{object}	map[string]interface{}
//	@Router		/api/bookmarks [get]
func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	list, err := s.store.ListBookmarks(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]bookmarkJSON, 0, len(list))
	for _, b := range list {
		out = append(out, bookmarkJSON{StoryID: b.StoryID, Title: b.Title, URL: b.URL, CreatedAt: b.CreatedAt})
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookmarks": out})
}

// handleAddBookmark godoc
//
//	@Summary	Bookmark a story
//	@Tags		Bookmarks
//	@Accept		json
//	@Produce	json
//	@Param		bookmark	body		object{story_id=int,title=string,url=string}	true	"Bookmark"
//	@Success	200			{object}	map[string]bool
//	@Failure	409			{object}	map[string]string	"Already bookmarked"
//	@Router		/api/bookmarks [post]
func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var req bookmarkJSON
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.StoryID == 0 || strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, errors.New("story_id and title required"))
		return
	}
	b := &model.Bookmark{StoryID: req.StoryID, Title: req.Title, URL: req.URL, CreatedAt: time.Now().Unix()}
	if err := s.store.AddBookmark(r.Context(), b); err != nil {
		if errors.Is(err, store.ErrDuplicateBookmark) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleRemoveBookmark godoc
//
//	@Summary	Remove a bookmark
//	@Tags		Bookmarks
//	@Produce	json
//	@Param		id	path		int	true	"Story ID"
//	@Success	200	{object}	map[string]bool
//	@Failure	404	{object}	map[string]string	"Not bookmarked"
//	@Router		/api/bookmarks/{id} [delete]
func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request, idStr string) {
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid story id"))
		return
	}
	if err := s.store.RemoveBookmark(r.Context(), storyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleListSeen godoc
//
//	@Summary	List recently opened stories
//	@Tags		Stories
//	@Produce	json
//	@Param		limit	query		int	false	"Max results"	default(50)
//	@Success	200		{object}	map[string]interface{}
//	@Router		/api/seen [get]
func (s *Server) handleListSeen(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	list, err := s.store.ListSeen(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]seenJSON, 0, len(list))
	for _, sn := range list {
		out = append(out, seenJSON{StoryID: sn.StoryID, SeenAt: sn.SeenAt})
	}
	writeJSON(w, http.StatusOK, map[string]any{"seen": out})
}

func (s *Server) serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(doc))
}

func (s *Server) markSeen(r *http.Request, storyID int64) {
	if s.store == nil {
		return
	}
	if err := s.store.MarkSeen(r.Context(), storyID, time.Now().Unix()); err != nil {
		s.log.Warn("mark seen failed", "story", storyID, "err", err)
	}
}

func (s *Server) allowRateLimit(w http.ResponseWriter, r *http.Request, action string, limit int) bool {
	if limit <= 0 {
		return true
	}
	key := fmt.Sprintf("%s:ip:%s", action, clientIP(r))
	if ok, retry := s.limiter.Allow(key, limit, time.Minute); !ok {
		writeRateLimit(w, retry)
		return false
	}
	return true
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type rowJSON struct {
	ID             int64  `json:"id"`
	Author         string `json:"author,omitempty"`
	BodyHTML       string `json:"body_html,omitempty"`
	CreatedAt      int64  `json:"created_at"`
	Depth          int    `json:"depth"`
	Collapsed      bool   `json:"collapsed,omitempty"`
	Highlighted    bool   `json:"highlighted,omitempty"`
	HiddenReplies  int    `json:"hidden_replies,omitempty"`
	HasMoreReplies bool   `json:"has_more_replies,omitempty"`
	Context        string `json:"context,omitempty"`
}

type storyJSON struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Author           string `json:"author,omitempty"`
	URL              string `json:"url,omitempty"`
	CreatedAt        int64  `json:"created_at"`
	TotalDescendants int    `json:"total_descendants"`
}

type matchJSON struct {
	ID              int64  `json:"id"`
	Author          string `json:"author,omitempty"`
	AuthorHighlight string `json:"author_highlight,omitempty"`
	BodyHighlight   string `json:"body_highlight,omitempty"`
}

type bookmarkJSON struct {
	StoryID   int64  `json:"story_id"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

type seenJSON struct {
	StoryID int64 `json:"story_id"`
	SeenAt  int64 `json:"seen_at"`
}

func writeSnapshot(w http.ResponseWriter, snap model.Snapshot, rows []model.NodeView) {
	out := make([]rowJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowJSON{
			ID:             row.Node.ID,
			Author:         row.Node.Author,
			BodyHTML:       row.Node.BodyHTML,
			CreatedAt:      row.Node.CreatedAt,
			Depth:          row.Node.Depth,
			Collapsed:      row.Collapsed,
			Highlighted:    row.Highlighted,
			HiddenReplies:  row.HiddenReplies,
			HasMoreReplies: row.Node.HasMoreReplies,
			Context:        row.Context,
		})
	}
	resp := map[string]any{
		"rows":               out,
		"loaded_total":       snap.LoadedTotal,
		"has_more_top_level": snap.HasMoreTopLevel,
		"is_loading_more":    snap.IsLoadingMore,
		"mode":               snap.Mode,
	}
	if snap.Story != nil {
		resp["story"] = storyJSON{
			ID:               snap.Story.ID,
			Title:            snap.Story.Title,
			Author:           snap.Story.Author,
			URL:              snap.Story.URL,
			CreatedAt:        snap.Story.CreatedAt,
			TotalDescendants: snap.Story.TotalDescendants,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, hn.ErrNotFound), errors.Is(err, engine.ErrUnknownNode):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrNoStory):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrClosed):
		status = http.StatusGone
	}
	writeError(w, status, err)
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeRateLimit(w http.ResponseWriter, retry time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate limit exceeded",
		"retry_after": int(retry.Seconds()),
	})
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func parseIntDefault(value string, def int) int {
	if value == "" {
		return def
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return def
}

func parseInt64Default(value string, def int64) int64 {
	if value == "" {
		return def
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	return def
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
