/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 16:40:20 2026 mstenber
 * Last modified: Thu Oct 15 18:03:44 2026 mstenber
 * Edit time:     11 min
 *
 */

package inmemory

import (
	"sort"

	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/fingon/go-bookshelf/util"
	"github.com/pkg/errors"
)

// inMemoryBackend keeps everything in a map; nothing survives Close.
type inMemoryBackend struct {
	name2Data map[string][]byte
	lock      util.MutexLocked
}

var _ storage.Backend = &inMemoryBackend{}

func NewInMemoryBackend() storage.Backend {
	return &inMemoryBackend{}
}

func (self *inMemoryBackend) Init(config storage.BackendConfiguration) error {
	defer self.lock.Locked()()
	self.name2Data = make(map[string][]byte)
	return nil
}

func (self *inMemoryBackend) Close() {
}

func (self *inMemoryBackend) Get(name string) ([]byte, error) {
	defer self.lock.Locked()()
	b, ok := self.name2Data[name]
	if !ok {
		return nil, errors.Wrapf(storage.ErrNotFound, "%q", name)
	}
	return append([]byte{}, b...), nil
}

func (self *inMemoryBackend) Set(name string, data []byte) error {
	defer self.lock.Locked()()
	mlog.Printf2("storage/inmemory/inmemory", "im.Set %q (%d b)", name, len(data))
	self.name2Data[name] = append([]byte{}, data...)
	return nil
}

func (self *inMemoryBackend) Delete(name string) error {
	defer self.lock.Locked()()
	mlog.Printf2("storage/inmemory/inmemory", "im.Delete %q", name)
	if _, ok := self.name2Data[name]; !ok {
		return errors.Wrapf(storage.ErrNotFound, "%q", name)
	}
	delete(self.name2Data, name)
	return nil
}

func (self *inMemoryBackend) Names() ([]string, error) {
	defer self.lock.Locked()()
	names := make([]string, 0, len(self.name2Data))
	for k := range self.name2Data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}
