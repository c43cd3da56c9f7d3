// Package sampler selects a capped subset of posts whose spread mirrors
// the diversity of the full export.
package sampler

import (
	"sort"
	"strings"

	"github.com/wxrtools/wxr2mdx/internal/wxr"
)

// Select returns at most limit posts. A limit of 0 (or anything ≥ the
// input size) returns the input unchanged.
//
// Posts are bucketed by the lowercase first rune of their title, buckets
// are ordered by descending size, and the result is drawn round-robin:
// one post from each non-empty bucket per pass until the limit is hit.
// This keeps a small sample representative of the whole alphabet instead
// of front-loading whatever the export happens to start with.
func Select(posts []wxr.Post, limit int) []wxr.Post {
	if limit <= 0 || limit >= len(posts) {
		return posts
	}

	buckets := make(map[rune][]wxr.Post)
	var keys []rune
	for _, p := range posts {
		key := bucketKey(p.Title)
		if _, seen := buckets[key]; !seen {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], p)
	}

	// Largest buckets drain first. Equal-sized buckets keep first-seen
	// order, which is as good as any.
	sort.SliceStable(keys, func(i, j int) bool {
		return len(buckets[keys[i]]) > len(buckets[keys[j]])
	})

	selected := make([]wxr.Post, 0, limit)
	for len(selected) < limit {
		took := 0
		for _, key := range keys {
			if len(selected) == limit {
				break
			}
			bucket := buckets[key]
			if len(bucket) == 0 {
				continue
			}
			selected = append(selected, bucket[0])
			buckets[key] = bucket[1:]
			took++
		}
		// Every bucket ran dry before the limit; nothing left to take.
		if took == 0 {
			break
		}
	}

	return selected
}

func bucketKey(title string) rune {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, r := range t {
		return r
	}
	return 0
}
