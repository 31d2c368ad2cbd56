// Command hnmock serves a deterministic synthetic story and comment graph
// in the item API wire format, for demos and manual testing without hitting
// the real service:
//
//	hnmock -addr :9090
//	BURROW_API_BASE=http://localhost:9090 burrow read --story 1
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/burrowhq/burrow/internal/model"
)

var authors = []string{
	"pg", "dang", "tptacek", "patio11", "jacquesm",
	"ingve", "mooreds", "simonw", "minimaxir", "jsnell",
}

var bodies = []string{
	"Great post! This is exactly what I was looking for.",
	"I disagree with the premise here, and here is why.",
	"Has anyone benchmarked this? I'd love to see performance numbers.",
	"This reminds me of the early days of the internet.",
	"Interesting take. I wonder how this scales.",
	"I've been working on something similar. Happy to collaborate!",
	"Can you share more details about the implementation?",
	"I tried this and it works great!",
	"Not sure I agree, but appreciate the perspective.",
	"Would love to see a follow-up post on this topic.",
	"The code looks clean. Nice work!",
	"Obligatory <i>it depends</i> answer: context matters a lot here.",
}

var titles = []string{
	"Show HN: A terminal reader for large discussion threads",
	"Why incremental tree loading beats fetching everything",
	"Ask HN: How do you read 1000-comment threads?",
	"The lost art of threaded discussion",
	"SQLite as an application state store",
}

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	stories := flag.Int("stories", 5, "number of stories to generate")
	breadth := flag.Int("breadth", 4, "max children per node")
	depth := flag.Int("depth", 7, "max comment depth")
	seed := flag.Int64("seed", 42, "graph seed, same seed gives the same graph")
	flag.Parse()

	items := generate(*stories, *breadth, *depth, *seed)
	log.Printf("hnmock serving %d items for %d stories on %s", len(items), *stories, *addr)

	mux := http.NewServeMux()
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/item/"), ".json")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		item, ok := items[id]
		if !ok {
			// The real API returns a 200 "null" body for unknown ids.
			w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(item)
	})

	log.Fatal(http.ListenAndServe(*addr, mux))
}

// generate builds the full item graph up front. Story ids start at 1;
// comment ids are allocated sequentially after the stories so every id is
// stable for a given seed.
func generate(stories, breadth, depth int, seed int64) map[int64]model.Item {
	rng := rand.New(rand.NewSource(seed))
	items := make(map[int64]model.Item)
	nextID := int64(stories) + 1

	for s := 1; s <= stories; s++ {
		storyID := int64(s)
		story := model.Item{
			ID:    storyID,
			Type:  "story",
			By:    authors[rng.Intn(len(authors))],
			Time:  1700000000 + int64(s)*3600,
			Title: titles[(s-1)%len(titles)],
			URL:   "https://example.com/" + strconv.Itoa(s),
			Score: 10 + rng.Intn(500),
		}

		n := 2 + rng.Intn(breadth*2)
		var total int
		for i := 0; i < n; i++ {
			kidID := grow(items, rng, &nextID, storyID, story.Time, 1, breadth, depth, &total)
			story.Kids = append(story.Kids, kidID)
		}
		story.Descendants = total
		items[storyID] = story
	}
	return items
}

func grow(items map[int64]model.Item, rng *rand.Rand, nextID *int64, parent, parentTime int64, level, breadth, depth int, total *int) int64 {
	id := *nextID
	*nextID++
	*total++

	item := model.Item{
		ID:     id,
		Type:   "comment",
		By:     authors[rng.Intn(len(authors))],
		Time:   parentTime + int64(rng.Intn(7200)) + 60,
		Text:   bodies[rng.Intn(len(bodies))],
		Parent: parent,
	}

	// A sprinkling of dead and deleted comments, like the real corpus.
	switch rng.Intn(25) {
	case 0:
		item.Dead = true
	case 1:
		item.Deleted = true
		item.Text = ""
		item.By = ""
	}

	if level < depth {
		// Deeper levels get narrower so threads taper off naturally.
		max := breadth - level/2
		if max < 1 {
			max = 1
		}
		n := rng.Intn(max + 1)
		for i := 0; i < n; i++ {
			kidID := grow(items, rng, nextID, id, item.Time, level+1, breadth, depth, total)
			item.Kids = append(item.Kids, kidID)
		}
	}

	items[id] = item
	return id
}
