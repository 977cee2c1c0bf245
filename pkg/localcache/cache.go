// Package localcache is the device-local store backing the local-first
// preference reads and the notifier's seen-id set. It wraps an embedded
// BadgerDB so reads stay synchronous and cheap while the remote KV store
// converges in the background.
package localcache

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the cache at dir. An empty dir opens an
// in-memory cache, used by tests.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("localcache: open %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the stored bytes for key, or (nil, false) when absent.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("localcache: get %s: %w", key, err)
	}
	return value, true, nil
}

func (c *Cache) Set(key string, value []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("localcache: set %s: %w", key, err)
	}
	return nil
}
