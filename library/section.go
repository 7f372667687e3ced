/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 17:15:09 2026 mstenber
 * Last modified: Fri Oct 16 18:27:55 2026 mstenber
 * Edit time:     38 min
 *
 */

package library

import (
	"fmt"
	"io"
	"strings"
)

// Entry is single node in the sections directory: either *Category
// (which has more entries below it) or *Shelf (which has books).
type Entry interface {
	Name() string
	isEntry()
}

type Category struct {
	Title    string
	Children []Entry
}

type Shelf struct {
	Title string
	Books []string
}

func (self *Category) Name() string { return self.Title }
func (self *Category) isEntry()     {}

func (self *Shelf) Name() string { return self.Title }
func (self *Shelf) isEntry()     {}

var _ Entry = &Category{}
var _ Entry = &Shelf{}

const indentString = "    "

// Walk calls cb for every entry depth first, parents before their
// children. If cb returns false for a category, its children are
// skipped.
func Walk(entries []Entry, cb func(e Entry, depth int) bool) {
	walk(entries, 0, cb)
}

func walk(entries []Entry, depth int, cb func(e Entry, depth int) bool) {
	for _, e := range entries {
		if !cb(e, depth) {
			continue
		}
		if c, ok := e.(*Category); ok {
			walk(c.Children, depth+1, cb)
		}
	}
}

// Display writes the sections as indented text; books are listed one
// level below their shelf.
func Display(w io.Writer, entries []Entry) (err error) {
	Walk(entries, func(e Entry, depth int) bool {
		if err != nil {
			return false
		}
		indent := strings.Repeat(indentString, depth)
		if _, err = fmt.Fprintf(w, "%s%s\n", indent, e.Name()); err != nil {
			return false
		}
		if s, ok := e.(*Shelf); ok {
			for _, b := range s.Books {
				_, err = fmt.Fprintf(w, "%s%s%s\n", indent, indentString, b)
				if err != nil {
					return false
				}
			}
		}
		return true
	})
	return
}

// Shelves returns all shelves, in Walk order.
func Shelves(entries []Entry) []*Shelf {
	var shelves []*Shelf
	Walk(entries, func(e Entry, depth int) bool {
		if s, ok := e.(*Shelf); ok {
			shelves = append(shelves, s)
		}
		return true
	})
	return shelves
}

// FindShelf returns the first shelf named title, or nil.
func FindShelf(entries []Entry, title string) *Shelf {
	for _, s := range Shelves(entries) {
		if s.Title == title {
			return s
		}
	}
	return nil
}

// Resolve follows path of entry names from the top level; nil if any
// of them is missing.
func Resolve(entries []Entry, path ...string) Entry {
	var found Entry
	for _, name := range path {
		found = nil
		for _, e := range entries {
			if e.Name() == name {
				found = e
				break
			}
		}
		if found == nil {
			return nil
		}
		entries = nil
		if c, ok := found.(*Category); ok {
			entries = c.Children
		}
	}
	return found
}

func countCategories(entries []Entry) int {
	n := 0
	Walk(entries, func(e Entry, depth int) bool {
		if _, ok := e.(*Category); ok {
			n++
		}
		return true
	})
	return n
}
