/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 17:05:38 2026 mstenber
 * Last modified: Fri Oct 16 17:31:25 2026 mstenber
 * Edit time:     23 min
 *
 */

package bolt

import (
	"bytes"
	"os"
	"path/filepath"

	bbolt "github.com/coreos/bbolt"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/pkg/errors"
)

const dbFilename = "bolt.db"

var dataKey = []byte("data")

// boltBackend provides on-disk storage in single bbolt file; all
// names live in the 'data' bucket.
type boltBackend struct {
	db *bbolt.DB
}

var _ storage.Backend = &boltBackend{}

func NewBoltBackend() storage.Backend {
	return &boltBackend{}
}

func (self *boltBackend) Init(config storage.BackendConfiguration) error {
	dir := config.Directory
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "bolt directory")
	}
	db, err := bbolt.Open(filepath.Join(dir, dbFilename), 0600, nil)
	if err != nil {
		return errors.Wrap(err, "bbolt.Open")
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dataKey)
		return err
	})
	if err != nil {
		db.Close()
		return errors.Wrap(err, "bbolt bucket")
	}
	self.db = db
	mlog.Printf2("storage/bolt/bolt", "bbolt.Init %s", dir)
	return nil
}

func (self *boltBackend) Close() {
	self.db.Close()
}

func (self *boltBackend) Get(name string) (v []byte, err error) {
	k := []byte(name)
	err = self.db.View(func(tx *bbolt.Tx) error {
		// Seek rather than Get so empty values are not confused
		// with missing ones
		fk, fv := tx.Bucket(dataKey).Cursor().Seek(k)
		if fk == nil || !bytes.Equal(fk, k) {
			return errors.Wrapf(storage.ErrNotFound, "%q", name)
		}
		// bolt owns fv only for the lifetime of tx
		v = append([]byte{}, fv...)
		return nil
	})
	return
}

func (self *boltBackend) Set(name string, data []byte) error {
	mlog.Printf2("storage/bolt/bolt", "bbolt.Set %q (%d b)", name, len(data))
	return self.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(dataKey).Put([]byte(name), data)
	})
}

func (self *boltBackend) Delete(name string) error {
	mlog.Printf2("storage/bolt/bolt", "bbolt.Delete %q", name)
	k := []byte(name)
	return self.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(dataKey)
		fk, _ := b.Cursor().Seek(k)
		if fk == nil || !bytes.Equal(fk, k) {
			return errors.Wrapf(storage.ErrNotFound, "%q", name)
		}
		return b.Delete(k)
	})
}

func (self *boltBackend) Names() (names []string, err error) {
	names = []string{}
	err = self.db.View(func(tx *bbolt.Tx) error {
		// keys are kept in byte order, which is also string order
		return tx.Bucket(dataKey).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return
}
