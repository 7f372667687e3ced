/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 16:02:48 2026 mstenber
 * Last modified: Thu Oct 15 22:10:37 2026 mstenber
 * Edit time:     24 min
 *
 */

package library

import (
	"fmt"

	"github.com/fingon/go-bookshelf/mlog"
)

// Book is the catalog record of single title.
type Book struct {
	Title  string `codec:"t" json:"title"`
	Author string `codec:"a" json:"author"`
	Year   int    `codec:"y" json:"year"`
	Genre  string `codec:"g" json:"genre"`
}

func (self Book) String() string {
	return fmt.Sprintf("%s (%s, %d, %s)", self.Title, self.Author, self.Year, self.Genre)
}

// Catalog is title -> Book hash table, which also remembers the
// order in which titles were first added.
type Catalog struct {
	books  map[string]*Book
	titles []string
}

func NewCatalog(books ...Book) *Catalog {
	self := &Catalog{books: make(map[string]*Book)}
	for _, b := range books {
		self.Add(b)
	}
	return self
}

// Add stores the book, replacing earlier record with the same title
// if any. It returns true if the title was not in the catalog.
func (self *Catalog) Add(book Book) (added bool) {
	_, ok := self.books[book.Title]
	mlog.Printf2("library/catalog", "Add %v existing:%v", book, ok)
	self.books[book.Title] = &book
	if !ok {
		self.titles = append(self.titles, book.Title)
	}
	return !ok
}

// Get returns the record for title, or nil. The record belongs to
// the catalog and must not be modified.
func (self *Catalog) Get(title string) *Book {
	return self.books[title]
}

// Titles returns titles in the order they were first added.
func (self *Catalog) Titles() []string {
	return append([]string(nil), self.titles...)
}

// Books returns the records in the order titles were first added.
func (self *Catalog) Books() []Book {
	books := make([]Book, len(self.titles))
	for i, t := range self.titles {
		books[i] = *self.books[t]
	}
	return books
}

func (self *Catalog) Len() int {
	return len(self.titles)
}
