/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 18:01:44 2026 mstenber
 * Last modified: Fri Oct 16 17:40:12 2026 mstenber
 * Edit time:     29 min
 *
 */

package badger

import (
	"os"

	"github.com/dgraph-io/badger"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/pkg/errors"
)

// badgerBackend provides on-disk storage.
//
// - key prefix 's/' + name -> data
type badgerBackend struct {
	db *badger.DB
}

var _ storage.Backend = &badgerBackend{}

var namePrefix = []byte("s/")

func NewBadgerBackend() storage.Backend {
	return &badgerBackend{}
}

func nameKey(name string) []byte {
	return append(append([]byte{}, namePrefix...), name...)
}

func (self *badgerBackend) Init(config storage.BackendConfiguration) error {
	dir := config.Directory
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "badger directory")
	}
	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	db, err := badger.Open(opts)
	if err != nil {
		return errors.Wrap(err, "badger.Open")
	}
	self.db = db
	mlog.Printf2("storage/badger/badger", "bad.Init %s", dir)
	return nil
}

func (self *badgerBackend) Close() {
	self.db.Close()
}

func notFound(err error, name string) error {
	if err == badger.ErrKeyNotFound {
		return errors.Wrapf(storage.ErrNotFound, "%q", name)
	}
	return err
}

func (self *badgerBackend) Get(name string) (v []byte, err error) {
	err = self.db.View(func(txn *badger.Txn) error {
		i, err := txn.Get(nameKey(name))
		if err == nil {
			v, err = i.ValueCopy(nil)
		}
		return err
	})
	err = notFound(err, name)
	return
}

func (self *badgerBackend) Set(name string, data []byte) error {
	mlog.Printf2("storage/badger/badger", "bad.Set %q (%d b)", name, len(data))
	return self.db.Update(func(txn *badger.Txn) error {
		return txn.Set(nameKey(name), data)
	})
}

func (self *badgerBackend) Delete(name string) error {
	mlog.Printf2("storage/badger/badger", "bad.Delete %q", name)
	err := self.db.Update(func(txn *badger.Txn) error {
		k := nameKey(name)
		if _, err := txn.Get(k); err != nil {
			return err
		}
		return txn.Delete(k)
	})
	return notFound(err, name)
}

func (self *badgerBackend) Names() (names []string, err error) {
	names = []string{}
	err = self.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(namePrefix); it.ValidForPrefix(namePrefix); it.Next() {
			k := it.Item().Key()
			names = append(names, string(k[len(namePrefix):]))
		}
		return nil
	})
	return
}
