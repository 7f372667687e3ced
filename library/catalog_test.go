/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 16:40:02 2026 mstenber
 * Last modified: Sat Oct 17 09:12:31 2026 mstenber
 * Edit time:     9 min
 *
 */

package library

import (
	"testing"

	"github.com/stvp/assert"
)

func TestCatalog(t *testing.T) {
	t.Parallel()
	c := NewCatalog(Book{"b", "x", 1, "g"}, Book{"a", "y", 2, "g"})
	assert.Equal(t, c.Len(), 2)
	assert.Equal(t, c.Titles(), []string{"b", "a"})
	assert.Equal(t, c.Get("a").Author, "y")
	assert.True(t, c.Get("c") == nil)

	// replacing keeps the position
	assert.True(t, !c.Add(Book{"b", "z", 3, "h"}))
	assert.Equal(t, c.Len(), 2)
	assert.Equal(t, c.Books(), []Book{{"b", "z", 3, "h"}, {"a", "y", 2, "g"}})

	assert.True(t, c.Add(Book{"c", "w", 4, "g"}))
	assert.Equal(t, c.Titles(), []string{"b", "a", "c"})

	// returned slices are copies
	titles := c.Titles()
	titles[0] = "q"
	assert.Equal(t, c.Titles()[0], "b")
}

func TestBookString(t *testing.T) {
	t.Parallel()
	b := Book{"The Hobbit", "J.R.R. Tolkien", 1937, "Fantasy"}
	assert.Equal(t, b.String(), "The Hobbit (J.R.R. Tolkien, 1937, Fantasy)")
}
