package session

import "sync"

// FetchLikedIDs loads the ids of the members liked by the token's owner,
// typically by calling GET /api/likes/ids.
type FetchLikedIDs func(token string) ([]int64, error)

// LikedIDsCache caches the liked member ids of the signed-in user. It is
// refreshed through the session store's Refresher hook and drops results
// belonging to a superseded sign-in.
type LikedIDsCache struct {
	mu    sync.RWMutex
	store *Store
	fetch FetchLikedIDs
	ids   map[int64]struct{}
}

func NewLikedIDsCache(store *Store, fetch FetchLikedIDs) *LikedIDsCache {
	cache := &LikedIDsCache{store: store, fetch: fetch, ids: make(map[int64]struct{})}
	store.AddRefresher(cache)
	return cache
}

// Refresh fetches the liked ids for the given token and publishes them,
// unless a newer sign-in has happened since the refresh was launched.
func (c *LikedIDsCache) Refresh(generation uint64, token string) {
	ids, err := c.fetch(token)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store.Generation() != generation {
		return
	}
	c.ids = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		c.ids[id] = struct{}{}
	}
}

// Contains reports whether the signed-in user has liked the member.
func (c *LikedIDsCache) Contains(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ids[id]
	return ok
}

// IDs returns a copy of the cached liked member ids.
func (c *LikedIDsCache) IDs() []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int64, 0, len(c.ids))
	for id := range c.ids {
		ids = append(ids, id)
	}
	return ids
}

// Add records a freshly liked member without a round trip, keeping the
// cache consistent after POST /api/likes/:username succeeds.
func (c *LikedIDsCache) Add(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[id] = struct{}{}
}
