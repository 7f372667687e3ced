/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 16:10:55 2026 mstenber
 * Last modified: Fri Oct 16 17:20:49 2026 mstenber
 * Edit time:     26 min
 *
 */

// storagetest package contains the conformance tests every
// storage.Backend has to pass.
package storagetest

import (
	"testing"

	"github.com/fingon/go-bookshelf/storage"
	"github.com/pkg/errors"
	"github.com/stvp/assert"
)

// ProdBackend exercises initialized, empty backend.
func ProdBackend(t *testing.T, be storage.Backend) {
	names, err := be.Names()
	assert.Nil(t, err)
	assert.Equal(t, len(names), 0)

	_, err = be.Get("foo")
	assert.Equal(t, errors.Cause(err), storage.ErrNotFound)
	assert.Equal(t, errors.Cause(be.Delete("foo")), storage.ErrNotFound)

	assert.Nil(t, be.Set("foo", []byte("data")))
	b, err := be.Get("foo")
	assert.Nil(t, err)
	assert.Equal(t, b, []byte("data"))

	// overwrite
	assert.Nil(t, be.Set("foo", []byte("data2")))
	b, err = be.Get("foo")
	assert.Nil(t, err)
	assert.Equal(t, b, []byte("data2"))

	// empty value is still a value
	assert.Nil(t, be.Set("bar", []byte{}))
	b, err = be.Get("bar")
	assert.Nil(t, err)
	assert.Equal(t, len(b), 0)

	assert.Nil(t, be.Set("baz", []byte("z")))
	names, err = be.Names()
	assert.Nil(t, err)
	assert.Equal(t, names, []string{"bar", "baz", "foo"})

	assert.Nil(t, be.Delete("bar"))
	_, err = be.Get("bar")
	assert.Equal(t, errors.Cause(err), storage.ErrNotFound)
	names, err = be.Names()
	assert.Nil(t, err)
	assert.Equal(t, names, []string{"baz", "foo"})
}

// ProdPersistence checks that data survives Close + Init with the
// same configuration.
func ProdPersistence(t *testing.T, factory func() storage.Backend, config storage.BackendConfiguration) {
	be := factory()
	assert.Nil(t, be.Init(config))
	assert.Nil(t, be.Set("lib", []byte("content")))
	be.Close()

	be = factory()
	assert.Nil(t, be.Init(config))
	defer be.Close()
	b, err := be.Get("lib")
	assert.Nil(t, err)
	assert.Equal(t, b, []byte("content"))
}
