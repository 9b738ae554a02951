// Package storage persists perft results between runs, keyed by position
// fingerprint and search depth.
package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps BadgerDB for persistent perft results.
type Store struct {
	db *badger.DB
}

// Open opens the store at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// perftKey builds the database key for a fingerprint and depth.
func perftKey(hash uint64, depth int) []byte {
	return []byte(fmt.Sprintf("perft:%016x:%d", hash, depth))
}

// PutPerft records the node count for a position fingerprint and depth.
func (s *Store) PutPerft(hash uint64, depth int, nodes int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(nodes))

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, depth), buf[:])
	})
}

// GetPerft looks up a previously recorded node count. The second return
// value is false on a cache miss.
func (s *Store) GetPerft(hash uint64, depth int) (int64, bool, error) {
	var nodes int64
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("malformed perft entry: %d bytes", len(val))
			}
			nodes = int64(binary.BigEndian.Uint64(val))
			found = true
			return nil
		})
	})

	return nodes, found, err
}
