/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 15:04:41 2026 mstenber
 * Last modified: Thu Oct 15 17:52:08 2026 mstenber
 * Edit time:     19 min
 *
 */

// storage package provides named blob storage for library
// snapshots, on top of pluggable backends (see subpackages and
// storage/factory).
package storage

import (
	"github.com/fingon/go-bookshelf/codec"
	"github.com/pkg/errors"
)

// ErrNotFound is the cause of errors about nonexistent names.
var ErrNotFound = errors.New("no such name in storage")

// BackendConfiguration is given to Backend.Init.
type BackendConfiguration struct {
	// Directory is where on-disk backends keep their files; it is
	// created if it does not exist.
	Directory string

	// Codec, if set, is applied to data by CodecBackend.
	Codec codec.Codec
}

// Backend stores byte blobs by name. It provides an API that
// returns results that are consistent with the previous calls.
type Backend interface {
	// Init makes the backend usable.
	Init(config BackendConfiguration) error

	// Close the backend
	Close()

	// Get returns data stored under name; error with ErrNotFound
	// cause if there is none.
	Get(name string) ([]byte, error)

	// Set stores data under name, replacing what was there.
	Set(name string, data []byte) error

	// Delete removes name, which MUST exist (ErrNotFound otherwise).
	Delete(name string) error

	// Names returns all stored names in sorted order.
	Names() ([]string, error)
}
