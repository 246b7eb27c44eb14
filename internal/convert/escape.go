package convert

import (
	"hash/fnv"
	"strings"
	"sync"
)

// literalReplacer rewrites a raw label into the body of a quoted N-Quad
// string literal. Built once at package init; Replace is O(length) with no
// backtracking.
var literalReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeLiteral returns the text-literal-safe form of a raw label.
func EscapeLiteral(s string) string {
	return literalReplacer.Replace(s)
}

const (
	escapeShardCount      = 16
	escapeShardMaxEntries = 4096
)

// escapeCache memoizes EscapeLiteral results. Labels repeat heavily across a
// dump, so most calls are shard-local read hits. The cache is read-through:
// removing it changes nothing but speed.
type escapeCache struct {
	shards [escapeShardCount]escapeShard
}

type escapeShard struct {
	mu sync.RWMutex
	m  map[string]string
}

func newEscapeCache() *escapeCache {
	c := &escapeCache{}
	for i := range c.shards {
		c.shards[i].m = make(map[string]string, 256)
	}
	return c
}

func (c *escapeCache) shard(s string) *escapeShard {
	h := fnv.New32a()
	h.Write([]byte(s)) //nolint:errcheck // fnv.Write cannot fail.
	return &c.shards[h.Sum32()%escapeShardCount]
}

// Escape returns the memoized escaped form of s.
func (c *escapeCache) Escape(s string) string {
	if s == "" {
		return ""
	}

	sh := c.shard(s)

	sh.mu.RLock()
	v, ok := sh.m[s]
	sh.mu.RUnlock()

	if ok {
		return v
	}

	v = EscapeLiteral(s)

	sh.mu.Lock()
	// Bound memory for pathological label distributions: reset the shard
	// instead of tracking recency, which keeps the hit path lock-cheap.
	if len(sh.m) >= escapeShardMaxEntries {
		sh.m = make(map[string]string, 256)
	}
	sh.m[s] = v
	sh.mu.Unlock()

	return v
}
