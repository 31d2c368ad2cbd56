// Package httpapi provides the read-only JSON API for burrow's serve mode.
//
//	@title						Burrow API
//	@version					1.0
//	@description				Incremental discussion-tree reader over the Hacker News item API.
//	@description
//	@description				Every story gets its own tree session. Opening a story materializes
//	@description				the first page of top-level comments down to the depth ceiling;
//	@description				further pages and deeper branches are loaded on demand and merged
//	@description				into the session. All endpoints are read-only against the upstream
//	@description				source; the only local writes are seen-story and bookmark state.
//	@description
//	@description				```bash
//	@description				curl /api/stories/8863/tree
//	@description				curl -X POST /api/stories/8863/more
//	@description				curl '/api/stories/8863/search?q=dropbox'
//	@description				```
//
//	@contact.name				Burrow
//	@license.name				MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@tag.name					Stories
//	@tag.description			Open story sessions, page in more comments, expand deep branches.
//
//	@tag.name					Views
//	@tag.description			Nested and recency projections plus substring search over the loaded tree.
//
//	@tag.name					Bookmarks
//	@tag.description			Locally saved stories.
package httpapi
