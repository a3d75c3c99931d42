package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.etcd.io/bbolt"
	"wordfreq/internal/domain"
)

// CurrentSchemaVersion is the archive format version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	bucketRuns       = []byte("runs")
	bucketMeta       = []byte("meta")
	keySchemaVersion = []byte("schema_version")
)

// BoltStore archives pipeline runs keyed by ULID, so key order is
// creation order.
type BoltStore struct {
	db *bbolt.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRuns, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return checkSchema(tx.Bucket(bucketMeta))
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}, nil
}

// checkSchema stamps a fresh archive and rejects one written by a newer
// format.
func checkSchema(meta *bbolt.Bucket) error {
	data := meta.Get(keySchemaVersion)
	if data == nil {
		v, _ := json.Marshal(CurrentSchemaVersion)
		return meta.Put(keySchemaVersion, v)
	}
	var version int
	if err := json.Unmarshal(data, &version); err != nil {
		return fmt.Errorf("corrupt schema version: %w", err)
	}
	if version > CurrentSchemaVersion {
		return fmt.Errorf("archive schema version %d is newer than supported version %d", version, CurrentSchemaVersion)
	}
	return nil
}

// PutRun stores run under a new ID and returns it. CreatedAt is filled in
// when zero.
func (s *BoltStore) PutRun(run domain.Run) (string, error) {
	s.mu.Lock()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}
	id, err := ulid.New(ulid.Timestamp(run.CreatedAt), s.entropy)
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to generate run id: %w", err)
	}
	run.ID = id.String()

	data, err := json.Marshal(run)
	if err != nil {
		return "", err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(run.ID), data)
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

func (s *BoltStore) GetRun(id string) (domain.Run, error) {
	var run domain.Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
		}
		return json.Unmarshal(data, &run)
	})
	return run, err
}

// ListRuns returns archived runs newest first. limit <= 0 returns all.
func (s *BoltStore) ListRuns(limit int) ([]domain.Run, error) {
	var runs []domain.Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var run domain.Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decode run %s: %w", k, err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	return runs, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
