/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Tue Oct 13 13:22:52 2026 mstenber
 * Last modified: Fri Oct 16 18:02:14 2026 mstenber
 * Edit time:     31 min
 *
 */

package factory

import (
	"sort"

	"github.com/fingon/go-bookshelf/codec"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/fingon/go-bookshelf/storage/badger"
	"github.com/fingon/go-bookshelf/storage/bolt"
	"github.com/fingon/go-bookshelf/storage/file"
	"github.com/fingon/go-bookshelf/storage/inmemory"
	"github.com/fingon/go-bookshelf/util"
	"github.com/pkg/errors"
)

var ErrUnknownBackend = errors.New("unknown backend")

type factoryCallback func() storage.Backend

var backendFactories = map[string]factoryCallback{
	"inmemory": inmemory.NewInMemoryBackend,
	"badger":   badger.NewBadgerBackend,
	"bolt":     bolt.NewBoltBackend,
	"file":     file.NewFileBackend,
}

// List returns the backend names, sorted.
func List() []string {
	keys := make([]string, 0, len(backendFactories))
	for k := range backendFactories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func New(name, dir string) (storage.Backend, error) {
	var config storage.BackendConfiguration
	config.Directory = dir
	return NewWithConfig(name, config)
}

func NewWithConfig(name string, config storage.BackendConfiguration) (storage.Backend, error) {
	mlog.Printf2("storage/factory/factory", "f.NewWithConfig %v %v", name, config)
	f, ok := backendFactories[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", name)
	}
	be := f()
	if config.Codec != nil {
		be = &storage.CodecBackend{Backend: be}
	}
	if err := be.Init(config); err != nil {
		return nil, err
	}
	return be, nil
}

type CryptoConfiguration struct {
	storage.BackendConfiguration
	BackendName    string
	Password, Salt string
	Iterations     int

	// SignOnly authenticates instead of encrypting.
	SignOnly bool
}

const (
	defaultIterations = 12345
	defaultSalt       = "asdf"
)

// NewCryptoBackend creates backend with codec chain chosen based on
// configuration:
//
// - no password: compression only
//
// - password: encryption + compression
//
// - password + SignOnly: authentication + compression
func NewCryptoBackend(config CryptoConfiguration) (storage.Backend, error) {
	mlog.Printf2("storage/factory/factory", "f.NewCryptoBackend")
	iterations := config.Iterations
	if iterations == 0 {
		iterations = defaultIterations
	}
	salt := []byte(util.SOr(config.Salt, defaultSalt))
	password := []byte(config.Password)
	cc := &codec.CompressingCodec{}
	var c codec.Codec
	switch {
	case len(password) == 0:
		mlog.Printf2("storage/factory/factory", " only compression")
		c = codec.CodecChain{}.Init(cc)
	case config.SignOnly:
		mlog.Printf2("storage/factory/factory", " with authentication + compression")
		c = codec.CodecChain{}.Init(codec.AuthenticatingCodec{}.Init(password, salt, iterations), cc)
	default:
		mlog.Printf2("storage/factory/factory", " with encryption + compression")
		c = codec.CodecChain{}.Init(codec.EncryptingCodec{}.Init(password, salt, iterations), cc)
	}
	beconfig := config.BackendConfiguration
	beconfig.Codec = c
	return NewWithConfig(config.BackendName, beconfig)
}
