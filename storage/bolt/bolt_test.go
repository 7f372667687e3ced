/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 17:30:02 2026 mstenber
 * Last modified: Mon Oct 12 17:34:49 2026 mstenber
 * Edit time:     3 min
 *
 */

package bolt

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/fingon/go-bookshelf/storage"
	"github.com/fingon/go-bookshelf/storage/storagetest"
	"github.com/stvp/assert"
)

func TestBolt(t *testing.T) {
	t.Parallel()
	dir, _ := ioutil.TempDir("", "bolt")
	defer os.RemoveAll(dir)

	be := NewBoltBackend()
	assert.Nil(t, be.Init(storage.BackendConfiguration{Directory: dir}))
	defer be.Close()
	storagetest.ProdBackend(t, be)
}

func TestBoltPersistence(t *testing.T) {
	t.Parallel()
	dir, _ := ioutil.TempDir("", "bolt")
	defer os.RemoveAll(dir)

	// nonexistent subdirectory is created
	config := storage.BackendConfiguration{Directory: filepath.Join(dir, "sub")}
	storagetest.ProdPersistence(t, NewBoltBackend, config)
}
