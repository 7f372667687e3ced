/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Thu Oct 15 15:40:11 2026 mstenber
 * Last modified: Sat Oct 17 13:14:29 2026 mstenber
 * Edit time:     19 min
 *
 */

package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/fingon/go-bookshelf/codec"
	"github.com/pkg/errors"
	"github.com/stvp/assert"
)

func runString(t *testing.T, o options, args ...string) (string, error) {
	var b bytes.Buffer
	err := run(&b, o, args)
	return b.String(), err
}

func TestCommands(t *testing.T) {
	t.Parallel()
	var o options
	s, err := runString(t, o, "list")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(s, "1. A Brief History of Time\n2. Becoming\n"), s)
	assert.True(t, strings.HasSuffix(s, "8. The Selfish Gene\n"), s)

	s, err = runString(t, o, "search", "The Hobbit", "Dune")
	assert.Nil(t, err)
	assert.Equal(t, s, "Searching for \"The Hobbit\": Found!\nSearching for \"Dune\": Not Found\n")

	s, err = runString(t, o, "info", "Becoming", "Dune")
	assert.Nil(t, err)
	assert.Equal(t, s, "Becoming (Michelle Obama, 2018, Biography)\n\"Dune\": not in the library\n")

	s, err = runString(t, o, "stats")
	assert.Nil(t, err)
	assert.Equal(t, s, "Books: 8\nTree depth: 4\nCategories: 2\nShelves: 4\nOldest: 1887\nNewest: 2018\n")

	s, err = runString(t, o, "tree")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(s, "Fiction\n    Fantasy\n        Harry Potter\n"), s)
}

func TestUsage(t *testing.T) {
	t.Parallel()
	var o options
	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"search"},
		{"add", "Dune"},
		{"add", "Dune", "Frank Herbert", "year", "SF", "Fantasy"},
		{"save"},
		{"mount"},
	} {
		_, err := runString(t, o, args...)
		assert.Equal(t, errors.Cause(err), errUsage, args)
	}
}

func TestPersistence(t *testing.T) {
	t.Parallel()
	dir, _ := ioutil.TempDir("", "bookshelf")
	defer os.RemoveAll(dir)
	o := options{backend: "bolt", dir: dir, name: "lib", password: "siikret"}

	s, err := runString(t, o, "add", "Dune", "Frank Herbert", "1965", "Science Fiction", "Fantasy")
	assert.Nil(t, err)
	assert.Equal(t, s, "Added Dune (Frank Herbert, 1965, Science Fiction)\n")

	s, err = runString(t, o, "search", "Dune")
	assert.Nil(t, err)
	assert.Equal(t, s, "Searching for \"Dune\": Found!\n")

	// Wrong password cannot read it
	o2 := o
	o2.password = "wrong"
	_, err = runString(t, o2, "list")
	assert.Equal(t, errors.Cause(err), codec.ErrAuthentication)

	// Other name starts from the default library
	o2 = o
	o2.name = "other"
	s, err = runString(t, o2, "search", "Dune")
	assert.Nil(t, err)
	assert.Equal(t, s, "Searching for \"Dune\": Not Found\n")
}
