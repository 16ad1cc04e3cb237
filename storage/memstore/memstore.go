// Package memstore implements storage.Backend entirely in process memory,
// guarded by a single mutex the way the teacher guards its scene cache
// (gogpu-gg/scene/cache.go's sync.RWMutex entry map) — used by tests and
// by any embedding that does not need cross-process durability.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/storage"
)

func init() {
	storage.Register("memory", func() storage.Backend { return New() })
}

type layerCacheKey struct {
	layerID uint64
	time    time.Duration
	key     string
}

type keyFrame struct {
	start, end time.Duration
}

// Store is an in-memory storage.Backend.
type Store struct {
	mu sync.RWMutex

	edits            map[uint64]string
	elements         map[uint64]string
	highestElementID uint64
	layerKeyFrames   map[uint64][]keyFrame
	layerElements    map[uint64]map[time.Duration][]uint64 // layerID -> keyframe start -> attached element ids
	layerProperties  map[uint64]string
	animationProps   string
	layerCache       map[layerCacheKey]string
}

// New returns an empty in-memory Store.
func New() *Store {
	return &Store{
		edits:           make(map[uint64]string),
		elements:        make(map[uint64]string),
		layerKeyFrames:  make(map[uint64][]keyFrame),
		layerElements:   make(map[uint64]map[time.Duration][]uint64),
		layerProperties: make(map[uint64]string),
		layerCache:      make(map[layerCacheKey]string),
	}
}

func (s *Store) Name() string { return "memory" }

func (s *Store) Init(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Execute runs every command under a single lock, so the whole batch is
// atomic with respect to any other Execute call, per spec §4.E.
func (s *Store) Execute(_ context.Context, commands []storage.Command) ([]storage.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	responses := make([]storage.Response, len(commands))
	for i, cmd := range commands {
		responses[i] = s.apply(cmd)
	}
	return responses, nil
}

func (s *Store) apply(cmd storage.Command) storage.Response {
	switch cmd.Kind {
	case storage.WriteEdit:
		s.edits[cmd.Index] = cmd.Payload
		return storage.Response{Kind: storage.Updated}

	case storage.ReadEdits:
		var edits []storage.Edit
		for idx, payload := range s.edits {
			if idx >= cmd.IndexRange.Start && (cmd.IndexRange.End == 0 || idx < cmd.IndexRange.End) {
				edits = append(edits, storage.Edit{Index: idx, Payload: payload})
			}
		}
		sort.Slice(edits, func(i, j int) bool { return edits[i].Index < edits[j].Index })
		return storage.Response{Kind: storage.EditsResponse, Edits: edits}

	case storage.ReadHighestUnusedElementID:
		s.highestElementID++
		return storage.Response{Kind: storage.ElementIDResponse, ElementID: s.highestElementID}

	case storage.WriteElement:
		s.elements[cmd.ElementID] = cmd.Payload
		if cmd.ElementID > s.highestElementID {
			s.highestElementID = cmd.ElementID
		}
		return storage.Response{Kind: storage.Updated}

	case storage.ReadElement:
		payload, ok := s.elements[cmd.ElementID]
		if !ok {
			return storage.Response{Kind: storage.NotFound}
		}
		return storage.Response{Kind: storage.ElementResponse, ElementID: cmd.ElementID, ElementPayload: payload}

	case storage.DeleteElement:
		delete(s.elements, cmd.ElementID)
		return storage.Response{Kind: storage.Updated}

	case storage.AttachElementToLayer:
		if s.layerElements[cmd.LayerID] == nil {
			s.layerElements[cmd.LayerID] = make(map[time.Duration][]uint64)
		}
		s.layerElements[cmd.LayerID][cmd.Time] = appendUnique(s.layerElements[cmd.LayerID][cmd.Time], cmd.ElementID)
		return storage.Response{Kind: storage.Updated}

	case storage.DetachElementFromLayer:
		s.layerElements[cmd.LayerID][cmd.Time] = removeID(s.layerElements[cmd.LayerID][cmd.Time], cmd.ElementID)
		return storage.Response{Kind: storage.Updated}

	case storage.AddKeyFrame:
		s.layerKeyFrames[cmd.LayerID] = append(s.layerKeyFrames[cmd.LayerID], keyFrame{start: cmd.Time, end: cmd.EndTime})
		return storage.Response{Kind: storage.Updated}

	case storage.DeleteKeyFrame:
		frames := s.layerKeyFrames[cmd.LayerID]
		for i, f := range frames {
			if f.start == cmd.Time {
				s.layerKeyFrames[cmd.LayerID] = append(frames[:i], frames[i+1:]...)
				break
			}
		}
		return storage.Response{Kind: storage.Updated}

	case storage.ReadKeyFrames:
		var frames []storage.KeyFrame
		for _, f := range s.layerKeyFrames[cmd.LayerID] {
			if f.start >= cmd.Range.Start && (cmd.Range.End == 0 || f.start < cmd.Range.End) {
				frames = append(frames, storage.KeyFrame{Start: f.start, End: f.end})
			}
		}
		sort.Slice(frames, func(i, j int) bool { return frames[i].Start < frames[j].Start })
		return storage.Response{Kind: storage.KeyFramesResponse, KeyFrames: frames}

	case storage.ReadElementsForKeyFrame:
		elements := append([]uint64(nil), s.layerElements[cmd.LayerID][cmd.Time]...)
		return storage.Response{Kind: storage.ElementsResponse, Elements: elements}

	case storage.WriteLayerProperties:
		s.layerProperties[cmd.LayerID] = cmd.Payload
		return storage.Response{Kind: storage.Updated}

	case storage.ReadLayerProperties:
		props, ok := s.layerProperties[cmd.LayerID]
		if !ok {
			return storage.Response{Kind: storage.NotFound}
		}
		return storage.Response{Kind: storage.LayerPropertiesResponse, Properties: props}

	case storage.WriteAnimationProperties:
		s.animationProps = cmd.Payload
		return storage.Response{Kind: storage.Updated}

	case storage.ReadAnimationProperties:
		if s.animationProps == "" {
			return storage.Response{Kind: storage.NotFound}
		}
		return storage.Response{Kind: storage.AnimationPropertiesResponse, Properties: s.animationProps}

	case storage.WriteLayerCache:
		key := layerCacheKey{layerID: cmd.LayerID, time: cmd.Time, key: cmd.CacheKey}
		s.layerCache[key] = cmd.Payload
		return storage.Response{Kind: storage.Updated}

	case storage.ReadLayerCache:
		key := layerCacheKey{layerID: cmd.LayerID, time: cmd.Time, key: cmd.CacheKey}
		payload, ok := s.layerCache[key]
		if !ok {
			return storage.Response{Kind: storage.NotFound}
		}
		return storage.Response{Kind: storage.LayerCacheResponse, Properties: payload}

	case storage.DeleteLayerCache:
		key := layerCacheKey{layerID: cmd.LayerID, time: cmd.Time, key: cmd.CacheKey}
		delete(s.layerCache, key)
		return storage.Response{Kind: storage.Updated}

	case storage.DeleteLayerCachesFor:
		for key := range s.layerCache {
			if key.layerID == cmd.LayerID {
				delete(s.layerCache, key)
			}
		}
		return storage.Response{Kind: storage.Updated}
	}

	return storage.Response{Kind: storage.ErrorResponse, ErrorKind: "protocol", ErrorMessage: "unrecognized command"}
}

func appendUnique(ids []uint64, id uint64) []uint64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []uint64, id uint64) []uint64 {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
