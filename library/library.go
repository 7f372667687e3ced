/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 18:40:33 2026 mstenber
 * Last modified: Fri Oct 16 22:31:06 2026 mstenber
 * Edit time:     66 min
 *
 */

// library package ties the book catalog (title -> details), the
// sections directory (categories of shelves of titles) and the
// ordered title tree together.
//
// The tree always contains exactly the catalog titles, inserted in
// catalog order; the same order is what gets persisted, so a loaded
// library has the same tree shape as the saved one.
package library

import (
	"fmt"
	"strings"

	"github.com/fingon/go-bookshelf/bst"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/util"
	"github.com/pkg/errors"
)

var (
	ErrEmptyQuery  = errors.New("please enter a book title")
	ErrNotFound    = errors.New("book not found")
	ErrNoSuchShelf = errors.New("no such shelf")
)

type Library struct {
	// lock protects catalog and sections; tree has its own
	lock     util.MutexLocked
	catalog  *Catalog
	sections []Entry
	tree     bst.LockedTree

	// generation is bumped by every Add
	generation uint64
}

// Stats is the summary shown to users.
type Stats struct {
	Books      int `json:"books"`
	Depth      int `json:"depth"`
	Categories int `json:"categories"`
	Shelves    int `json:"shelves"`

	// Publication year range; zero for empty catalog
	Oldest int `json:"oldest"`
	Newest int `json:"newest"`
}

// New creates library out of catalog and sections. Both are owned by
// the library afterwards.
func New(catalog *Catalog, sections []Entry) *Library {
	if catalog == nil {
		catalog = NewCatalog()
	}
	self := &Library{catalog: catalog, sections: sections}
	for _, t := range catalog.titles {
		self.tree.Insert(t)
	}
	mlog.Printf2("library/library", "New %v", self)
	return self
}

func (self *Library) String() string {
	return fmt.Sprintf("lib{%p,n:%d}", self, self.tree.Len())
}

// Add adds book to the catalog. New titles are also added to the
// tree and to the end of the named shelf. For known titles only the
// record is replaced; shelf is ignored. The title is normalized the
// same way as Search and Lookup queries, so empty title is an error.
func (self *Library) Add(book Book, shelf string) error {
	title, err := normalizeQuery(book.Title)
	if err != nil {
		return err
	}
	book.Title = title
	defer self.lock.Locked()()
	mlog.Printf2("library/library", "%v.Add %v to %q", self, book, shelf)
	if self.catalog.Get(book.Title) != nil {
		self.catalog.Add(book)
		self.generation++
		return nil
	}
	s := FindShelf(self.sections, shelf)
	if s == nil {
		return errors.Wrapf(ErrNoSuchShelf, "shelf %q", shelf)
	}
	self.catalog.Add(book)
	s.Books = append(s.Books, book.Title)
	self.tree.Insert(book.Title)
	self.generation++
	return nil
}

// Generation changes whenever the library content changes.
func (self *Library) Generation() uint64 {
	defer self.lock.Locked()()
	return self.generation
}

// Sorted returns titles in sorted order.
func (self *Library) Sorted() []string {
	return self.tree.InorderTraversal()
}

// Contains is exact title membership test.
func (self *Library) Contains(title string) bool {
	return self.tree.Search(title)
}

func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}

// Search is Contains for user input: surrounding whitespace is
// ignored, and empty query is an error.
func (self *Library) Search(query string) (bool, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return false, err
	}
	return self.tree.Search(query), nil
}

// Lookup returns the catalog record matching user input.
func (self *Library) Lookup(query string) (*Book, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	defer self.lock.Locked()()
	b := self.catalog.Get(query)
	if b == nil {
		return nil, errors.Wrapf(ErrNotFound, "%q", query)
	}
	bc := *b
	return &bc, nil
}

// View provides consistent read-only access to the catalog and the
// sections for the duration of cb. The library is locked meanwhile,
// so cb must not call back into the library.
func (self *Library) View(cb func(catalog *Catalog, sections []Entry)) {
	defer self.lock.Locked()()
	cb(self.catalog, self.sections)
}

func (self *Library) Stats() Stats {
	defer self.lock.Locked()()
	s := Stats{Books: self.tree.Len(),
		Depth:      self.tree.Depth(),
		Categories: countCategories(self.sections),
		Shelves:    len(Shelves(self.sections))}
	for i, b := range self.catalog.Books() {
		if i == 0 || b.Year < s.Oldest {
			s.Oldest = b.Year
		}
		if i == 0 || b.Year > s.Newest {
			s.Newest = b.Year
		}
	}
	return s
}
