package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
)

// A KV is a durable string-keyed store backed by an embedded leveldb
// database, the process-local equivalent of the storefront's browser
// storage.
type KV struct {
	db *leveldb.DB
}

func OpenKV(path string) (KV, error) {
	const op = "OpenKV"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return KV{}, fmt.Errorf("%s: %w", op, err)
	}
	return KV{db}, nil
}

// Get returns the stored value and whether the key exists.
func (kv KV) Get(key string) ([]byte, bool, error) {
	const op = "KV.Get"

	b, err := kv.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return b, true, nil
}

func (kv KV) Put(key string, value []byte) error {
	const op = "KV.Put"

	if err := kv.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (kv KV) Delete(key string) error {
	const op = "KV.Delete"

	if err := kv.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (kv KV) Close() {
	const op = "KV.Close"
	log := slog.With("op", op)

	log.Info("closing key-value storage...")
	if err := kv.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("key-value storage is closed")
}
