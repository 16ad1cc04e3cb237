package animation

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/internal/coreerr"
	"github.com/Logicalshift/flowbetween-sub004/storage"
)

// StreamLayerCache is the per-layer drawing cache of spec §4.G: a layer's
// rendered appearance at a given time and cache key (e.g. "onionskin",
// "thumbnail") can be stored once and retrieved cheaply until the layer's
// content changes invalidates it. An in-memory LRU index bounds how much
// encoded drawing data stays resident before older entries are evicted
// from the backend, per Config's cache budget.
//
// Grounded on gogpu-gg/scene/cache.go's LayerCache: the same budgeted-LRU
// eviction shape, generalized from an in-process pixmap cache keyed by
// layer id to a storage-backed cache keyed by (layer, time, cache key) and
// holding a serialized canvas.Drawing rather than a rasterized pixmap.
type StreamLayerCache struct {
	backend   storage.Backend
	budget    int64
	mu        sync.Mutex
	used      int64
	lru       *list.List
	entries   map[cacheEntryKey]*list.Element
}

type cacheEntryKey struct {
	layerID uint64
	when    time.Duration
	key     string
}

type cacheEntryMeta struct {
	cacheEntryKey
	size int64
}

// NewStreamLayerCache wraps backend as a drawing cache bounded to
// budgetMB megabytes of encoded drawing data; budgetMB <= 0 means
// unbounded.
func NewStreamLayerCache(backend storage.Backend, budgetMB int) *StreamLayerCache {
	return &StreamLayerCache{
		backend: backend,
		budget:  int64(budgetMB) * 1 << 20,
		lru:     list.New(),
		entries: make(map[cacheEntryKey]*list.Element),
	}
}

// Retrieve returns the cached drawing for (layerID, when, key), or false if
// nothing is cached (or the cached payload is corrupt).
func (c *StreamLayerCache) Retrieve(ctx context.Context, layerID uint64, when time.Duration, key string) (canvas.Drawing, bool, error) {
	resp, err := c.backend.Execute(ctx, []storage.Command{{
		Kind: storage.ReadLayerCache, LayerID: layerID, Time: when, CacheKey: key,
	}})
	if err != nil {
		return canvas.Drawing{}, false, coreerr.Wrap(coreerr.Storage, err, "reading layer cache for layer %d", layerID)
	}
	if len(resp) == 0 || resp[0].Kind != storage.LayerCacheResponse {
		return canvas.Drawing{}, false, nil
	}
	drawing, err := canvas.DecodeDrawing(resp[0].Properties)
	if err != nil {
		return canvas.Drawing{}, false, nil
	}
	c.touch(cacheEntryKey{layerID, when, key})
	return drawing, true, nil
}

// Store saves drawing under (layerID, when, key), overwriting any existing
// entry, then evicts the least-recently-used entries until the cache's
// tracked size is back within budget.
func (c *StreamLayerCache) Store(ctx context.Context, layerID uint64, when time.Duration, key string, drawing canvas.Drawing) error {
	payload := canvas.EncodeDrawing(drawing)
	_, err := c.backend.Execute(ctx, []storage.Command{{
		Kind: storage.WriteLayerCache, LayerID: layerID, Time: when, CacheKey: key,
		Payload: payload,
	}})
	if err != nil {
		return coreerr.Wrap(coreerr.Storage, err, "writing layer cache for layer %d", layerID)
	}

	evicted := c.record(cacheEntryKey{layerID, when, key}, int64(len(payload)))
	for _, ev := range evicted {
		_, _ = c.backend.Execute(ctx, []storage.Command{{
			Kind: storage.DeleteLayerCache, LayerID: ev.layerID, Time: ev.when, CacheKey: ev.key,
		}})
	}
	return nil
}

// Invalidate discards every cache entry for layerID, e.g. after an edit
// changes what the layer looks like at some point in its timeline.
func (c *StreamLayerCache) Invalidate(ctx context.Context, layerID uint64) error {
	_, err := c.backend.Execute(ctx, []storage.Command{{Kind: storage.DeleteLayerCachesFor, LayerID: layerID}})
	if err != nil {
		return coreerr.Wrap(coreerr.Storage, err, "invalidating layer cache for layer %d", layerID)
	}
	c.forgetLayer(layerID)
	return nil
}

// touch moves an existing entry to the front of the LRU list on a cache
// hit.
func (c *StreamLayerCache) touch(k cacheEntryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[k]; ok {
		c.lru.MoveToFront(el)
	}
}

// record tracks a newly stored (or overwritten) entry's size and returns
// whichever least-recently-used entries must be evicted to stay within
// budget.
func (c *StreamLayerCache) record(k cacheEntryKey, size int64) []cacheEntryKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[k]; ok {
		c.used -= el.Value.(*cacheEntryMeta).size
		c.lru.Remove(el)
		delete(c.entries, k)
	}

	el := c.lru.PushFront(&cacheEntryMeta{cacheEntryKey: k, size: size})
	c.entries[k] = el
	c.used += size

	if c.budget <= 0 {
		return nil
	}

	var evicted []cacheEntryKey
	for c.used > c.budget {
		oldest := c.lru.Back()
		if oldest == nil || oldest == el {
			break
		}
		meta := oldest.Value.(*cacheEntryMeta)
		c.lru.Remove(oldest)
		delete(c.entries, meta.cacheEntryKey)
		c.used -= meta.size
		evicted = append(evicted, meta.cacheEntryKey)
	}
	return evicted
}

// forgetLayer drops every tracked entry for layerID from the LRU index.
func (c *StreamLayerCache) forgetLayer(layerID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, el := range c.entries {
		if k.layerID != layerID {
			continue
		}
		c.used -= el.Value.(*cacheEntryMeta).size
		c.lru.Remove(el)
		delete(c.entries, k)
	}
}

// RetrieveOrGenerate returns the cached drawing for (layerID, when, key) if
// present, otherwise calls generate, stores its result, and returns that.
func (c *StreamLayerCache) RetrieveOrGenerate(ctx context.Context, layerID uint64, when time.Duration, key string, generate func() (canvas.Drawing, error)) (canvas.Drawing, error) {
	if drawing, ok, err := c.Retrieve(ctx, layerID, when, key); err != nil {
		return canvas.Drawing{}, err
	} else if ok {
		return drawing, nil
	}

	drawing, err := generate()
	if err != nil {
		return canvas.Drawing{}, err
	}
	if err := c.Store(ctx, layerID, when, key, drawing); err != nil {
		return canvas.Drawing{}, err
	}
	return drawing, nil
}
