/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 18:02:17 2026 mstenber
 * Last modified: Mon Oct 12 09:14:40 2026 mstenber
 * Edit time:     7 min
 *
 */

package library

// NewDefault returns the built-in demo library of eight books.
func NewDefault() *Library {
	catalog := NewCatalog(
		Book{"Harry Potter", "J.K. Rowling", 1997, "Fantasy"},
		Book{"The Hobbit", "J.R.R. Tolkien", 1937, "Fantasy"},
		Book{"Sherlock Holmes", "Arthur Conan Doyle", 1887, "Mystery"},
		Book{"Gone Girl", "Gillian Flynn", 2012, "Mystery"},
		Book{"A Brief History of Time", "Stephen Hawking", 1988, "Science"},
		Book{"The Selfish Gene", "Richard Dawkins", 1976, "Science"},
		Book{"Steve Jobs", "Walter Isaacson", 2011, "Biography"},
		Book{"Becoming", "Michelle Obama", 2018, "Biography"},
	)
	sections := []Entry{
		&Category{Title: "Fiction", Children: []Entry{
			&Shelf{Title: "Fantasy", Books: []string{"Harry Potter", "The Hobbit"}},
			&Shelf{Title: "Mystery", Books: []string{"Sherlock Holmes", "Gone Girl"}},
		}},
		&Category{Title: "Non-Fiction", Children: []Entry{
			&Shelf{Title: "Science", Books: []string{"A Brief History of Time", "The Selfish Gene"}},
			&Shelf{Title: "Biography", Books: []string{"Steve Jobs", "Becoming"}},
		}},
	}
	return New(catalog, sections)
}
