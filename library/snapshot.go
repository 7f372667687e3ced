/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Mon Oct 12 13:20:51 2026 mstenber
 * Last modified: Fri Oct 16 22:44:19 2026 mstenber
 * Edit time:     57 min
 *
 */

package library

import (
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

const snapshotVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrBadEntry           = errors.New("invalid section entry")
)

type entryKind byte

const (
	entryKindUnset entryKind = iota
	entryKindCategory
	entryKindShelf
)

// entryData is the on-disk form of Entry.
type entryData struct {
	Kind     entryKind   `codec:"k"`
	Title    string      `codec:"t"`
	Books    []string    `codec:"b,omitempty"`
	Children []entryData `codec:"c,omitempty"`
}

// Snapshot is the persisted form of Library. Books are in catalog
// order, so replaying them reproduces the same tree.
type Snapshot struct {
	Version  int         `codec:"v"`
	Books    []Book      `codec:"b"`
	Sections []entryData `codec:"s"`
}

var cborHandle codec.CborHandle

func entriesToData(entries []Entry) []entryData {
	l := make([]entryData, 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case *Category:
			l = append(l, entryData{Kind: entryKindCategory, Title: e.Title,
				Children: entriesToData(e.Children)})
		case *Shelf:
			l = append(l, entryData{Kind: entryKindShelf, Title: e.Title,
				Books: append([]string(nil), e.Books...)})
		default:
			mlog.Panicf("unknown entry %T", e)
		}
	}
	return l
}

func dataToEntries(l []entryData, catalog *Catalog) ([]Entry, error) {
	entries := make([]Entry, 0, len(l))
	for _, ed := range l {
		switch ed.Kind {
		case entryKindCategory:
			if len(ed.Books) > 0 {
				return nil, errors.Wrapf(ErrBadEntry, "category %q with books", ed.Title)
			}
			children, err := dataToEntries(ed.Children, catalog)
			if err != nil {
				return nil, err
			}
			entries = append(entries, &Category{Title: ed.Title, Children: children})
		case entryKindShelf:
			if len(ed.Children) > 0 {
				return nil, errors.Wrapf(ErrBadEntry, "shelf %q with children", ed.Title)
			}
			for _, b := range ed.Books {
				if catalog.Get(b) == nil {
					return nil, errors.Wrapf(ErrBadEntry, "shelf %q has unknown book %q", ed.Title, b)
				}
			}
			entries = append(entries, &Shelf{Title: ed.Title, Books: ed.Books})
		default:
			return nil, errors.Wrapf(ErrBadEntry, "%q has kind %d", ed.Title, ed.Kind)
		}
	}
	return entries, nil
}

func (self *Library) Snapshot() *Snapshot {
	defer self.lock.Locked()()
	return &Snapshot{Version: snapshotVersion,
		Books:    self.catalog.Books(),
		Sections: entriesToData(self.sections)}
}

// Library reconstructs the library the snapshot was made of.
func (self *Snapshot) Library() (*Library, error) {
	if self.Version != snapshotVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", self.Version)
	}
	catalog := NewCatalog(self.Books...)
	sections, err := dataToEntries(self.Sections, catalog)
	if err != nil {
		return nil, err
	}
	return New(catalog, sections), nil
}

func (self *Snapshot) ToBytes() ([]byte, error) {
	var b []byte
	enc := codec.NewEncoderBytes(&b, &cborHandle)
	if err := enc.Encode(self); err != nil {
		return nil, errors.Wrap(err, "snapshot encode")
	}
	return b, nil
}

func NewSnapshotFromBytes(b []byte) (*Snapshot, error) {
	s := &Snapshot{}
	dec := codec.NewDecoderBytes(b, &cborHandle)
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "snapshot decode")
	}
	return s, nil
}

// Save stores the library under name in the backend.
func Save(be storage.Backend, name string, l *Library) error {
	mlog.Printf2("library/snapshot", "Save %v as %q", l, name)
	b, err := l.Snapshot().ToBytes()
	if err != nil {
		return err
	}
	return errors.Wrapf(be.Set(name, b), "saving %q", name)
}

// Load reads library stored under name. storage.ErrNotFound (as
// cause) indicates that there is no such library.
func Load(be storage.Backend, name string) (*Library, error) {
	mlog.Printf2("library/snapshot", "Load %q", name)
	b, err := be.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %q", name)
	}
	s, err := NewSnapshotFromBytes(b)
	if err != nil {
		return nil, err
	}
	return s.Library()
}
