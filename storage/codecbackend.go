/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 15:30:12 2026 mstenber
 * Last modified: Thu Oct 15 17:58:31 2026 mstenber
 * Edit time:     14 min
 *
 */

package storage

import (
	"github.com/fingon/go-bookshelf/codec"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/pkg/errors"
)

// CodecBackend applies Codec to everything passing through to the
// wrapped Backend. The name is used as the additional data, so blobs
// cannot be swapped between names without decoding failing (given
// authenticating codec).
type CodecBackend struct {
	Backend
	Codec codec.Codec
}

var _ Backend = &CodecBackend{}

// Init initializes the wrapped backend; Codec defaults to
// config.Codec.
func (self *CodecBackend) Init(config BackendConfiguration) error {
	if self.Codec == nil {
		self.Codec = config.Codec
	}
	if self.Codec == nil {
		self.Codec = codec.CodecChain{}.Init()
	}
	return self.Backend.Init(config)
}

func (self *CodecBackend) Get(name string) ([]byte, error) {
	data, err := self.Backend.Get(name)
	if err != nil {
		return nil, err
	}
	b, err := self.Codec.DecodeBytes(data, []byte(name))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %q", name)
	}
	mlog.Printf2("storage/codecbackend", "Get %q %d->%d bytes", name, len(data), len(b))
	return b, nil
}

func (self *CodecBackend) Set(name string, data []byte) error {
	b, err := self.Codec.EncodeBytes(data, []byte(name))
	if err != nil {
		return errors.Wrapf(err, "encoding %q", name)
	}
	mlog.Printf2("storage/codecbackend", "Set %q %d->%d bytes", name, len(data), len(b))
	return self.Backend.Set(name, b)
}
