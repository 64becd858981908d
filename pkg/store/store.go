// Package store memoizes per-upload results for the lifetime of the process.
// Entries are keyed by content hash and never invalidated: identical bytes
// always produce the identical table, so re-parsing on every interaction
// would be wasted work. Reads are safe from concurrent sessions; computation
// of a given key is only memoized, not synchronized, on the assumption that
// the host serializes execution within a session.
package store

import (
	"sync"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

type Store struct {
	datasets  sync.Map // content hash -> *models.Dataset
	summaries sync.Map // view key + content hash -> narrative text
}

func New() *Store {
	return &Store{}
}

// Dataset returns the cached canonical dataset for a content hash.
func (s *Store) Dataset(hash string) (*models.Dataset, bool) {
	v, ok := s.datasets.Load(hash)
	if !ok {
		return nil, false
	}
	return v.(*models.Dataset), true
}

// PutDataset caches a parsed dataset under its own content hash.
func (s *Store) PutDataset(ds *models.Dataset) {
	s.datasets.Store(ds.Hash, ds)
}

// Summary returns a cached narrative for a view key.
func (s *Store) Summary(key string) (string, bool) {
	v, ok := s.summaries.Load(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *Store) PutSummary(key, text string) {
	s.summaries.Store(key, text)
}

// SummaryKey composes the memoization key for an AI summary: the view the
// user asked about plus the identity of the upload it was computed from.
func SummaryKey(view, hash string) string {
	return view + "-" + hash
}
