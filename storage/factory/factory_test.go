/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Tue Oct 13 13:50:07 2026 mstenber
 * Last modified: Fri Oct 16 18:06:55 2026 mstenber
 * Edit time:     18 min
 *
 */

package factory

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/fingon/go-bookshelf/codec"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/fingon/go-bookshelf/storage/storagetest"
	"github.com/pkg/errors"
	"github.com/stvp/assert"
)

func TestList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, List(), []string{"badger", "bolt", "file", "inmemory"})
}

func TestUnknown(t *testing.T) {
	t.Parallel()
	_, err := New("floppy", "")
	assert.Equal(t, errors.Cause(err), ErrUnknownBackend)
}

func TestAllBackends(t *testing.T) {
	t.Parallel()
	for _, name := range List() {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir, _ := ioutil.TempDir("", "factory")
			defer os.RemoveAll(dir)
			be, err := New(name, filepath.Join(dir, name))
			assert.Nil(t, err)
			defer be.Close()
			storagetest.ProdBackend(t, be)
		})
	}
}

func TestCryptoBackend(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		n        string
		password string
		signOnly bool
	}{{"plain", "", false},
		{"encrypted", "siikret", false},
		{"signed", "siikret", true}} {
		test := test
		t.Run(test.n, func(t *testing.T) {
			t.Parallel()
			dir, _ := ioutil.TempDir("", "crypto")
			defer os.RemoveAll(dir)
			config := CryptoConfiguration{
				BackendConfiguration: storage.BackendConfiguration{Directory: dir},
				BackendName:          "bolt",
				Password:             test.password,
				SignOnly:             test.signOnly,
				Iterations:           16,
			}
			be, err := NewCryptoBackend(config)
			assert.Nil(t, err)
			storagetest.ProdBackend(t, be)
			assert.Nil(t, be.Set("lib", []byte("content")))
			be.Close()

			// Same configuration reads it back
			be, err = NewCryptoBackend(config)
			assert.Nil(t, err)
			b, err := be.Get("lib")
			assert.Nil(t, err)
			assert.Equal(t, b, []byte("content"))
			be.Close()

			if test.password == "" {
				return
			}
			// Wrong password does not
			config.Password = "wrong"
			be, err = NewCryptoBackend(config)
			assert.Nil(t, err)
			defer be.Close()
			_, err = be.Get("lib")
			assert.Equal(t, errors.Cause(err), codec.ErrAuthentication)
		})
	}
}
