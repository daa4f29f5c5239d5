// Package storage persists sessions in BadgerDB.
package storage

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/session"
)

// keySessionPrefix namespaces session records.
const keySessionPrefix = "session/"

func sessionKey(id string) []byte {
	return []byte(keySessionPrefix + id)
}

// Badger wraps BadgerDB for session persistence. It implements
// session.Store.
type Badger struct {
	db *badger.DB
}

var _ session.Store = (*Badger)(nil)

// Open opens (or creates) a database in dir.
func Open(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that never touches disk.
func OpenInMemory() (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Badger, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}
	return &Badger{db: db}, nil
}

// Close closes the database
func (b *Badger) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Save writes the session, replacing any previous version.
func (b *Badger) Save(ctx context.Context, s *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(s.ID), data)
	})
}

// Load reads a session. Unknown IDs return an error wrapping
// errors.ErrSessionNotFound.
func (b *Badger) Load(ctx context.Context, id string) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var s session.Session
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrSessionNotFound, "session %s", id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		})
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a session. Deleting an unknown ID is not an error.
func (b *Badger) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	})
}

// List returns every stored session in key order.
func (b *Badger) List(ctx context.Context) ([]*session.Session, error) {
	var out []*session.Session
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keySessionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var s session.Session
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &s)
			}); err != nil {
				return errors.Wrapf(err, "decode %s", it.Item().Key())
			}
			out = append(out, &s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
