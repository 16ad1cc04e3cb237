// Package sqlstore implements storage.Backend on top of database/sql and
// github.com/mattn/go-sqlite3, the closest pack analogue to the original's
// anim_sqlite crate. Table layout is grounded on
// original_source/anim_sqlite/src/db/editlog_statements.rs's prepared
// statement set (Flo_EditLog, Flo_EL_* side tables), collapsed into a
// smaller schema that still mirrors the same normalized edit-log/element
// table split.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Logicalshift/flowbetween-sub004/internal/coreerr"
	"github.com/Logicalshift/flowbetween-sub004/storage"
)

func init() {
	storage.Register("sqlite", func() storage.Backend { return &Store{} })
}

const schema = `
CREATE TABLE IF NOT EXISTS flo_editlog (
	idx     INTEGER PRIMARY KEY,
	payload TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS flo_element (
	id      INTEGER PRIMARY KEY,
	payload TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS flo_layer_element (
	layer_id   INTEGER NOT NULL,
	at_time    INTEGER NOT NULL,
	element_id INTEGER NOT NULL,
	PRIMARY KEY (layer_id, at_time, element_id)
);
CREATE TABLE IF NOT EXISTS flo_keyframe (
	layer_id INTEGER NOT NULL,
	start    INTEGER NOT NULL,
	end      INTEGER NOT NULL,
	PRIMARY KEY (layer_id, start)
);
CREATE TABLE IF NOT EXISTS flo_layer_properties (
	layer_id INTEGER PRIMARY KEY,
	payload  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS flo_animation_properties (
	id      INTEGER PRIMARY KEY CHECK (id = 0),
	payload TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS flo_layer_cache (
	layer_id INTEGER NOT NULL,
	at_time  INTEGER NOT NULL,
	cache_key TEXT NOT NULL,
	payload  TEXT NOT NULL,
	PRIMARY KEY (layer_id, at_time, cache_key)
);
`

// Store is a SQLite-backed storage.Backend.
type Store struct {
	// Path is the sqlite DSN (a filesystem path, or ":memory:"). Must be
	// set before Init.
	Path string

	db *sql.DB
}

// New returns a Store backed by the sqlite database at path.
func New(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) Name() string { return "sqlite" }

func (s *Store) Init(ctx context.Context) error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return coreerr.Wrap(coreerr.Storage, err, "open sqlite database %q", s.Path)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return coreerr.Wrap(coreerr.Storage, err, "migrate sqlite schema")
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Execute runs every command inside one SQL transaction, so the batch is
// atomic: if any command fails the whole transaction rolls back and no
// partial batch becomes durable, per spec §4.E.
func (s *Store) Execute(ctx context.Context, commands []storage.Command) ([]storage.Response, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.Storage, err, "begin transaction")
	}

	responses := make([]storage.Response, len(commands))
	for i, cmd := range commands {
		resp, err := applyTx(ctx, tx, cmd)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		responses[i] = resp
	}

	if err := tx.Commit(); err != nil {
		return nil, coreerr.Wrap(coreerr.Storage, err, "commit transaction")
	}
	return responses, nil
}

func applyTx(ctx context.Context, tx *sql.Tx, cmd storage.Command) (storage.Response, error) {
	switch cmd.Kind {
	case storage.WriteEdit:
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO flo_editlog (idx, payload) VALUES (?, ?)`, cmd.Index, cmd.Payload)
		return updatedOrErr(err)

	case storage.ReadEdits:
		rows, err := tx.QueryContext(ctx, `SELECT idx, payload FROM flo_editlog WHERE idx >= ? AND (? = 0 OR idx < ?) ORDER BY idx`,
			cmd.IndexRange.Start, cmd.IndexRange.End, cmd.IndexRange.End)
		if err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read edits")
		}
		defer rows.Close()
		var edits []storage.Edit
		for rows.Next() {
			var e storage.Edit
			if err := rows.Scan(&e.Index, &e.Payload); err != nil {
				return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "scan edit")
			}
			edits = append(edits, e)
		}
		return storage.Response{Kind: storage.EditsResponse, Edits: edits}, nil

	case storage.ReadHighestUnusedElementID:
		var max sql.NullInt64
		if err := tx.QueryRowContext(ctx, `SELECT MAX(id) FROM flo_element`).Scan(&max); err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read highest element id")
		}
		return storage.Response{Kind: storage.ElementIDResponse, ElementID: uint64(max.Int64) + 1}, nil

	case storage.WriteElement:
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO flo_element (id, payload) VALUES (?, ?)`, cmd.ElementID, cmd.Payload)
		return updatedOrErr(err)

	case storage.ReadElement:
		var payload string
		err := tx.QueryRowContext(ctx, `SELECT payload FROM flo_element WHERE id = ?`, cmd.ElementID).Scan(&payload)
		if err == sql.ErrNoRows {
			return storage.Response{Kind: storage.NotFound}, nil
		}
		if err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read element %d", cmd.ElementID)
		}
		return storage.Response{Kind: storage.ElementResponse, ElementID: cmd.ElementID, ElementPayload: payload}, nil

	case storage.DeleteElement:
		_, err := tx.ExecContext(ctx, `DELETE FROM flo_element WHERE id = ?`, cmd.ElementID)
		return updatedOrErr(err)

	case storage.AttachElementToLayer:
		_, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO flo_layer_element (layer_id, at_time, element_id) VALUES (?, ?, ?)`,
			cmd.LayerID, int64(cmd.Time), cmd.ElementID)
		return updatedOrErr(err)

	case storage.DetachElementFromLayer:
		_, err := tx.ExecContext(ctx, `DELETE FROM flo_layer_element WHERE layer_id = ? AND at_time = ? AND element_id = ?`,
			cmd.LayerID, int64(cmd.Time), cmd.ElementID)
		return updatedOrErr(err)

	case storage.AddKeyFrame:
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO flo_keyframe (layer_id, start, end) VALUES (?, ?, ?)`,
			cmd.LayerID, int64(cmd.Time), int64(cmd.EndTime))
		return updatedOrErr(err)

	case storage.DeleteKeyFrame:
		_, err := tx.ExecContext(ctx, `DELETE FROM flo_keyframe WHERE layer_id = ? AND start = ?`, cmd.LayerID, int64(cmd.Time))
		return updatedOrErr(err)

	case storage.ReadKeyFrames:
		rows, err := tx.QueryContext(ctx, `SELECT start, end FROM flo_keyframe WHERE layer_id = ? AND start >= ? AND (? = 0 OR start < ?) ORDER BY start`,
			cmd.LayerID, int64(cmd.Range.Start), int64(cmd.Range.End), int64(cmd.Range.End))
		if err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read keyframes")
		}
		defer rows.Close()
		var frames []storage.KeyFrame
		for rows.Next() {
			var start, end int64
			if err := rows.Scan(&start, &end); err != nil {
				return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "scan keyframe")
			}
			frames = append(frames, storage.KeyFrame{Start: durationOf(start), End: durationOf(end)})
		}
		return storage.Response{Kind: storage.KeyFramesResponse, KeyFrames: frames}, nil

	case storage.ReadElementsForKeyFrame:
		rows, err := tx.QueryContext(ctx, `SELECT element_id FROM flo_layer_element WHERE layer_id = ? AND at_time = ?`,
			cmd.LayerID, int64(cmd.Time))
		if err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read elements for keyframe")
		}
		defer rows.Close()
		var ids []uint64
		for rows.Next() {
			var id uint64
			if err := rows.Scan(&id); err != nil {
				return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "scan element id")
			}
			ids = append(ids, id)
		}
		return storage.Response{Kind: storage.ElementsResponse, Elements: ids}, nil

	case storage.WriteLayerProperties:
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO flo_layer_properties (layer_id, payload) VALUES (?, ?)`,
			cmd.LayerID, cmd.Payload)
		return updatedOrErr(err)

	case storage.ReadLayerProperties:
		var payload string
		err := tx.QueryRowContext(ctx, `SELECT payload FROM flo_layer_properties WHERE layer_id = ?`, cmd.LayerID).Scan(&payload)
		if err == sql.ErrNoRows {
			return storage.Response{Kind: storage.NotFound}, nil
		}
		if err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read layer properties")
		}
		return storage.Response{Kind: storage.LayerPropertiesResponse, Properties: payload}, nil

	case storage.WriteAnimationProperties:
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO flo_animation_properties (id, payload) VALUES (0, ?)`, cmd.Payload)
		return updatedOrErr(err)

	case storage.ReadAnimationProperties:
		var payload string
		err := tx.QueryRowContext(ctx, `SELECT payload FROM flo_animation_properties WHERE id = 0`).Scan(&payload)
		if err == sql.ErrNoRows {
			return storage.Response{Kind: storage.NotFound}, nil
		}
		if err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read animation properties")
		}
		return storage.Response{Kind: storage.AnimationPropertiesResponse, Properties: payload}, nil

	case storage.WriteLayerCache:
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO flo_layer_cache (layer_id, at_time, cache_key, payload) VALUES (?, ?, ?, ?)`,
			cmd.LayerID, int64(cmd.Time), cmd.CacheKey, cmd.Payload)
		return updatedOrErr(err)

	case storage.ReadLayerCache:
		var payload string
		err := tx.QueryRowContext(ctx,
			`SELECT payload FROM flo_layer_cache WHERE layer_id = ? AND at_time = ? AND cache_key = ?`,
			cmd.LayerID, int64(cmd.Time), cmd.CacheKey).Scan(&payload)
		if err == sql.ErrNoRows {
			return storage.Response{Kind: storage.NotFound}, nil
		}
		if err != nil {
			return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "read layer cache")
		}
		return storage.Response{Kind: storage.LayerCacheResponse, Properties: payload}, nil

	case storage.DeleteLayerCache:
		_, err := tx.ExecContext(ctx,
			`DELETE FROM flo_layer_cache WHERE layer_id = ? AND at_time = ? AND cache_key = ?`,
			cmd.LayerID, int64(cmd.Time), cmd.CacheKey)
		return updatedOrErr(err)

	case storage.DeleteLayerCachesFor:
		_, err := tx.ExecContext(ctx, `DELETE FROM flo_layer_cache WHERE layer_id = ?`, cmd.LayerID)
		return updatedOrErr(err)
	}

	return storage.Response{}, coreerr.New(coreerr.Protocol, fmt.Sprintf("unrecognized command kind %d", cmd.Kind), nil)
}

func updatedOrErr(err error) (storage.Response, error) {
	if err != nil {
		return storage.Response{}, coreerr.Wrap(coreerr.Storage, err, "execute command")
	}
	return storage.Response{Kind: storage.Updated}, nil
}

func durationOf(ns int64) time.Duration { return time.Duration(ns) }
