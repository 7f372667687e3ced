/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Thu Oct 15 16:44:41 2026 mstenber
 * Last modified: Sat Oct 17 13:52:35 2026 mstenber
 * Edit time:     34 min
 *
 */

package file

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/fingon/go-bookshelf/util"
	"github.com/pkg/errors"
)

// fileBackend stores every name in its own file within the
// directory.
//
// Name encoding: the file name is the hex encoded name, so any
// string is usable and the directory order is the name order.
//
// Set writes to a temporary file first and then renames it in
// place, so readers never see partial content.
type fileBackend struct {
	dir  string
	lock util.MutexLocked
}

const tempPrefix = ".tmp-"

var _ storage.Backend = &fileBackend{}

func NewFileBackend() storage.Backend {
	return &fileBackend{}
}

func (self *fileBackend) Init(config storage.BackendConfiguration) error {
	if err := os.MkdirAll(config.Directory, 0700); err != nil {
		return errors.Wrap(err, "file directory")
	}
	self.dir = config.Directory
	mlog.Printf2("storage/file/file", "fb.Init %s", self.dir)
	return nil
}

func (self *fileBackend) Close() {
}

func (self *fileBackend) path(name string) string {
	return filepath.Join(self.dir, hex.EncodeToString([]byte(name)))
}

func (self *fileBackend) Get(name string) ([]byte, error) {
	b, err := ioutil.ReadFile(self.path(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(storage.ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", name)
	}
	return b, nil
}

func (self *fileBackend) Set(name string, data []byte) error {
	defer self.lock.Locked()()
	mlog.Printf2("storage/file/file", "fb.Set %q (%d b)", name, len(data))
	f, err := ioutil.TempFile(self.dir, tempPrefix)
	if err != nil {
		return errors.Wrap(err, "TempFile")
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(f.Name(), self.path(name))
	}
	if err != nil {
		os.Remove(f.Name())
		return errors.Wrapf(err, "writing %q", name)
	}
	return nil
}

func (self *fileBackend) Delete(name string) error {
	defer self.lock.Locked()()
	mlog.Printf2("storage/file/file", "fb.Delete %q", name)
	err := os.Remove(self.path(name))
	if os.IsNotExist(err) {
		return errors.Wrapf(storage.ErrNotFound, "%q", name)
	}
	return errors.Wrapf(err, "removing %q", name)
}

func (self *fileBackend) Names() ([]string, error) {
	fis, err := ioutil.ReadDir(self.dir)
	if err != nil {
		return nil, errors.Wrap(err, "ReadDir")
	}
	names := []string{}
	for _, fi := range fis {
		n := fi.Name()
		if strings.HasPrefix(n, tempPrefix) {
			continue
		}
		b, err := hex.DecodeString(n)
		if err != nil {
			mlog.Printf2("storage/file/file", " ignoring %v", n)
			continue
		}
		names = append(names, string(b))
	}
	sort.Strings(names)
	return names, nil
}
