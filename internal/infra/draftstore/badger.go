// Package draftstore holds the key-value backends for in-progress test drive forms.
package draftstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"testdrive-hub/internal/infra"

	"github.com/dgraph-io/badger/v4"
)

type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a store under dir. An empty dir keeps everything in memory.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger draft store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Put(_ context.Context, key string, data []byte, ttl time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return infra.WrapRepoErr("failed to store draft", err, infra.KindDBFailure)
	}
	return nil
}

func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, infra.WrapRepoErr("draft not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read draft", err, infra.KindDBFailure)
	}
	return data, nil
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return infra.WrapRepoErr("failed to delete draft", err, infra.KindDBFailure)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
