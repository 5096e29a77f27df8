package cache

import (
	"context"
	"fmt"
	"time"
)

const viewKeyPrefix = "view:%s"

// IndexTTL bounds how stale the cached index page may be. Writes never
// invalidate the page cache; entries simply age out.
const IndexTTL = 5 * time.Second

// ViewKey returns the page-cache key for a named view.
func ViewKey(view string) string {
	return fmt.Sprintf(viewKeyPrefix, view)
}

// Invalidate removes a single key. Safe to call when Redis is unavailable.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// ClearView drops the cached page for a named view. This is the explicit
// manual-clear operation used by tests and operators; normal writes do not
// touch the page cache.
func ClearView(ctx context.Context, view string) {
	Invalidate(ctx, ViewKey(view))
}
