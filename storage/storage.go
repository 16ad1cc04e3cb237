// Package storage defines the pluggable element store contract of spec
// §4.E/§6.1: a Backend speaks a batch request/response protocol, so the
// animation core can run against an in-memory store in tests and a real
// persistence layer in production without changing a line of its edit
// pipeline.
//
// Grounded on the teacher's pluggable-backend contract
// (gogpu-gg/backend/backend.go's RenderBackend interface and
// backend/registry.go's name-keyed factory registry), generalized from
// "select a rendering backend" to "select a storage backend", and on
// original_source/anim_sqlite/src/db/editlog_statements.rs for the exact
// command surface a durable implementation must support.
package storage

import (
	"context"
	"time"
)

// CommandKind enumerates every request a Backend must understand, per
// spec §6.1.
type CommandKind int

const (
	WriteEdit CommandKind = iota
	ReadEdits
	ReadHighestUnusedElementID
	WriteElement
	ReadElement
	DeleteElement
	AttachElementToLayer
	DetachElementFromLayer
	AddKeyFrame
	DeleteKeyFrame
	ReadKeyFrames
	ReadElementsForKeyFrame
	WriteLayerProperties
	ReadLayerProperties
	WriteAnimationProperties
	ReadAnimationProperties
	WriteLayerCache
	ReadLayerCache
	DeleteLayerCache
	DeleteLayerCachesFor
)

// TimeRange selects keyframes by a half-open time interval.
type TimeRange struct {
	Start, End time.Duration
}

// IndexRange selects edit-log entries by a half-open log-index interval;
// End == 0 means "through the end of the log".
type IndexRange struct {
	Start, End uint64
}

// Command is one request in a batch, per spec §6.1. Only the fields
// relevant to Kind are populated; Backend implementations must ignore the
// rest.
type Command struct {
	Kind CommandKind

	Index      uint64     // WriteEdit
	Payload    string     // WriteEdit/WriteElement/WriteLayerProperties/WriteAnimationProperties
	IndexRange IndexRange // ReadEdits
	Range      TimeRange  // ReadKeyFrames

	LayerID uint64
	Time    time.Duration
	EndTime time.Duration

	ElementID uint64

	CacheKey string
}

// ResponseKind enumerates the possible shapes a Command's Response takes.
type ResponseKind int

const (
	Updated ResponseKind = iota
	NotFound
	ErrorResponse
	ElementResponse
	KeyFrameResponse
	LayerPropertiesResponse
	AnimationPropertiesResponse
	LayerCacheResponse
	ElementIDResponse
	EditsResponse
	KeyFramesResponse
	ElementsResponse
)

// Edit pairs a log index with its serialized edit, as returned by
// ReadEdits.
type Edit struct {
	Index   uint64
	Payload string
}

// KeyFrame is a keyframe's time interval, as returned by ReadKeyFrames.
type KeyFrame struct {
	Start, End time.Duration
}

// Response answers one Command; exactly the fields relevant to Kind are
// populated.
type Response struct {
	Kind ResponseKind

	ErrorKind    string
	ErrorMessage string

	ElementID      uint64
	ElementPayload string

	KeyFrame KeyFrame

	Properties string

	Edits     []Edit
	KeyFrames []KeyFrame
	Elements  []uint64
}

// Backend is the pluggable storage contract every implementation (in
// memory, SQL-backed, or otherwise) satisfies. Execute runs a batch of
// commands atomically per spec §4.E's "element writes are atomic"
// guarantee: either every command's response is returned, or the whole
// batch fails and none of it is durable.
type Backend interface {
	Name() string
	Init(ctx context.Context) error
	Close() error

	// Execute runs commands as one durable, atomic batch and returns one
	// Response per Command, in order.
	Execute(ctx context.Context, commands []Command) ([]Response, error)
}
