package algo

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RootKey is the group key of files that sit directly at the repository root.
const RootKey = "."

// groupCacheSize bounds the number of memoized path keys per Grouper.
const groupCacheSize = 8192

// KeyAndDepth maps a file path to its ancestor directory truncated to depth segments.
// It returns the key and the number of segments the key actually has, which is
// smaller than depth when the file is shallower. Root-level files map to (".", 0).
func KeyAndDepth(path string, depth int) (string, int) {
	normalized := strings.Trim(strings.ReplaceAll(path, `\`, "/"), "/")
	var segments []string
	for seg := range strings.SplitSeq(normalized, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) <= 1 || depth < 1 {
		return RootKey, 0
	}
	dirs := segments[:len(segments)-1]
	if len(dirs) > depth {
		dirs = dirs[:depth]
	}
	return strings.Join(dirs, "/"), len(dirs)
}

type groupKey struct {
	key   string
	depth int
}

// Grouper re-keys paths to directories of an exact depth. Results are memoized,
// since trend analysis groups the same paths once per window.
// It is safe for concurrent use.
type Grouper struct {
	depth int
	cache *lru.Cache[string, groupKey]
}

// NewGrouper returns a Grouper for the given directory depth.
func NewGrouper(depth int) *Grouper {
	cache, _ := lru.New[string, groupKey](groupCacheSize) // only fails for a non-positive size
	return &Grouper{depth: depth, cache: cache}
}

// Key returns the directory key for path and whether the key has exactly the configured depth.
// Records whose key is shallower must be dropped by the caller.
func (g *Grouper) Key(path string) (string, bool) {
	if cached, ok := g.cache.Get(path); ok {
		return cached.key, cached.depth == g.depth
	}
	key, depth := KeyAndDepth(path, g.depth)
	g.cache.Add(path, groupKey{key: key, depth: depth})
	return key, depth == g.depth
}
