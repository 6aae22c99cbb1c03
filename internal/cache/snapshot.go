// Package cache implements the stale-while-revalidate snapshot store used by
// the admin list endpoints: the last successful response for each query
// signature is kept with its fetch time and served when the database is
// unavailable. Writes are last-write-wins.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "snapshot:"

// ErrMiss signals that no snapshot exists for the signature.
var ErrMiss = errors.New("snapshot miss")

// Snapshot is a timestamped copy of a list response.
type Snapshot struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// IsStale reports whether the snapshot is older than maxAge.
func (s Snapshot) IsStale(maxAge time.Duration) bool {
	return time.Since(s.FetchedAt) > maxAge
}

// Store keeps snapshots in Redis.
type Store struct {
	client *redis.Client
	maxAge time.Duration
}

// NewStore builds a snapshot store. Entries expire from Redis at twice the
// staleness window so a stale-but-present snapshot can still back a failing
// database read.
func NewStore(client *redis.Client, maxAge time.Duration) *Store {
	if maxAge <= 0 {
		maxAge = time.Minute
	}
	return &Store{client: client, maxAge: maxAge}
}

// Signature normalizes a path and its query parameters into a cache key.
func Signature(path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// Put records the latest response for the signature.
func (s *Store) Put(ctx context.Context, signature string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	snapshot := Snapshot{Data: raw, FetchedAt: time.Now()}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKeyPrefix+signature, payload, 2*s.maxAge).Err()
}

// Get returns the stored snapshot for the signature.
func (s *Store) Get(ctx context.Context, signature string) (*Snapshot, error) {
	payload, err := s.client.Get(ctx, snapshotKeyPrefix+signature).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// MaxAge exposes the staleness window.
func (s *Store) MaxAge() time.Duration {
	return s.maxAge
}
