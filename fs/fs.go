/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Wed Oct 14 10:12:40 2026 mstenber
 * Last modified: Sat Oct 17 11:25:03 2026 mstenber
 * Edit time:     94 min
 *
 */

// fs package implements read-only pathfs.FileSystem view of a
// library:
//
//	/sections/<category>/.../<shelf>/<title>
//	/sorted/<position> <title>
//	/books/<title>
//
// Files contain the book details. Rendered nodes are cached per
// library generation, so Library.Add shows up without remounting.
package fs

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/bluele/gcache"
	"github.com/fingon/go-bookshelf/library"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/util"
	"github.com/hanwen/go-fuse/fuse"
	"github.com/hanwen/go-fuse/fuse/nodefs"
	"github.com/hanwen/go-fuse/fuse/pathfs"
)

const (
	SectionsDir = "sections"
	SortedDir   = "sorted"
	BooksDir    = "books"

	defaultCacheSize = 1000
	minPositionWidth = 2

	dirMode  = fuse.S_IFDIR | 0555
	fileMode = fuse.S_IFREG | 0444
)

// node is single rendered path; data is nil for directories.
type node struct {
	isDir   bool
	entries []fuse.DirEntry
	data    []byte
}

type cacheKey struct {
	generation uint64
	name       string
}

type Fs struct {
	pathfs.FileSystem
	library *library.Library
	cache   gcache.Cache
}

var _ pathfs.FileSystem = &Fs{}

func NewFs(lib *library.Library, cacheSize int) *Fs {
	self := &Fs{FileSystem: pathfs.NewDefaultFileSystem(), library: lib}
	if cacheSize > 0 {
		self.cache = gcache.New(cacheSize).
			ARC().
			Build()
	}
	return self
}

func (self *Fs) String() string {
	return "bookshelf"
}

// FileName is the name title (or section) has within the filesystem,
// if it does not collide with an earlier sibling (see fileNames).
func FileName(title string) string {
	n := strings.Replace(title, "/", "_", -1)
	if n == "." || n == ".." {
		n = strings.Replace(n, ".", "_", -1)
	}
	return n
}

// fileNames returns distinct file names for titles; names taken by
// earlier titles get " (N)" suffix.
func fileNames(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	l := make([]string, len(titles))
	for i, t := range titles {
		base := FileName(t)
		n := base
		for j := 2; seen[n]; j++ {
			n = fmt.Sprintf("%s (%d)", base, j)
		}
		seen[n] = true
		l[i] = n
	}
	return l
}

func dirEntries(dirs []string, files []string) []fuse.DirEntry {
	l := make([]fuse.DirEntry, 0, len(dirs)+len(files))
	for _, n := range dirs {
		l = append(l, fuse.DirEntry{Name: n, Mode: dirMode})
	}
	for _, n := range files {
		l = append(l, fuse.DirEntry{Name: n, Mode: fileMode})
	}
	return l
}

func bookData(b *library.Book) []byte {
	return []byte(fmt.Sprintf("Title: %s\nAuthor: %s\nYear: %d\nGenre: %s\n",
		b.Title, b.Author, b.Year, b.Genre))
}

// SortedNames returns the /sorted directory listing for titles.
func SortedNames(titles []string) []string {
	width := util.IMax(minPositionWidth, util.Digits(len(titles)))
	l := make([]string, len(titles))
	for i, t := range titles {
		l[i] = fmt.Sprintf("%0*d %s", width, i+1, FileName(t))
	}
	return l
}

func (self *Fs) lookup(name string) *node {
	if self.cache == nil {
		return self.render(name)
	}
	key := cacheKey{self.library.Generation(), name}
	if v, err := self.cache.GetIFPresent(key); err == nil {
		return v.(*node)
	}
	n := self.render(name)
	if n != nil {
		self.cache.Set(key, n)
	}
	return n
}

func (self *Fs) render(name string) (n *node) {
	mlog.Printf2("fs/fs", "fs.render %q", name)
	var path []string
	if name != "" {
		path = strings.Split(name, "/")
	}
	sorted := self.library.Sorted()
	self.library.View(func(catalog *library.Catalog, sections []library.Entry) {
		if len(path) == 0 {
			n = &node{isDir: true,
				entries: dirEntries([]string{BooksDir, SectionsDir, SortedDir}, nil)}
			return
		}
		switch path[0] {
		case BooksDir:
			n = renderFiles(catalog, sorted, fileNames(sorted), path[1:])
		case SortedDir:
			n = renderFiles(catalog, sorted, SortedNames(sorted), path[1:])
		case SectionsDir:
			n = renderSections(catalog, sections, path[1:])
		}
	})
	return
}

// renderFiles handles flat directory of book files; files[i] is the
// name of titles[i].
func renderFiles(catalog *library.Catalog, titles, files []string, path []string) *node {
	switch len(path) {
	case 0:
		return &node{isDir: true, entries: dirEntries(nil, files)}
	case 1:
		for i, f := range files {
			if f == path[0] {
				return &node{data: bookData(catalog.Get(titles[i]))}
			}
		}
	}
	return nil
}

func renderSections(catalog *library.Catalog, entries []library.Entry, path []string) *node {
	for {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		dirs := fileNames(names)
		if len(path) == 0 {
			return &node{isDir: true, entries: dirEntries(dirs, nil)}
		}
		var found library.Entry
		for i, d := range dirs {
			if d == path[0] {
				found = entries[i]
				break
			}
		}
		path = path[1:]
		switch e := found.(type) {
		case *library.Category:
			entries = e.Children
		case *library.Shelf:
			return renderFiles(catalog, e.Books, fileNames(e.Books), path)
		default:
			return nil
		}
	}
}

func (self *Fs) GetAttr(name string, context *fuse.Context) (*fuse.Attr, fuse.Status) {
	n := self.lookup(name)
	if n == nil {
		return nil, fuse.ENOENT
	}
	if n.isDir {
		return &fuse.Attr{Mode: dirMode, Nlink: 2}, fuse.OK
	}
	return &fuse.Attr{Mode: fileMode, Size: uint64(len(n.data)), Nlink: 1}, fuse.OK
}

func (self *Fs) OpenDir(name string, context *fuse.Context) ([]fuse.DirEntry, fuse.Status) {
	n := self.lookup(name)
	if n == nil {
		return nil, fuse.ENOENT
	}
	if !n.isDir {
		return nil, fuse.ENOTDIR
	}
	return n.entries, fuse.OK
}

func (self *Fs) Open(name string, flags uint32, context *fuse.Context) (nodefs.File, fuse.Status) {
	if flags&fuse.O_ANYWRITE != 0 {
		return nil, fuse.EPERM
	}
	n := self.lookup(name)
	if n == nil {
		return nil, fuse.ENOENT
	}
	if n.isDir {
		return nil, fuse.ToStatus(syscall.EISDIR)
	}
	return nodefs.NewReadOnlyFile(nodefs.NewDataFile(n.data)), fuse.OK
}

// Everything that would modify the filesystem is refused.

func (self *Fs) Create(name string, flags uint32, mode uint32, context *fuse.Context) (nodefs.File, fuse.Status) {
	return nil, fuse.EPERM
}

func (self *Fs) Mkdir(name string, mode uint32, context *fuse.Context) fuse.Status {
	return fuse.EPERM
}

func (self *Fs) Unlink(name string, context *fuse.Context) fuse.Status {
	return fuse.EPERM
}

func (self *Fs) Rmdir(name string, context *fuse.Context) fuse.Status {
	return fuse.EPERM
}

func (self *Fs) Rename(oldName string, newName string, context *fuse.Context) fuse.Status {
	return fuse.EPERM
}

func (self *Fs) Truncate(name string, size uint64, context *fuse.Context) fuse.Status {
	return fuse.EPERM
}

func (self *Fs) Chmod(name string, mode uint32, context *fuse.Context) fuse.Status {
	return fuse.EPERM
}

// Mount mounts read-only view of lib at mountpoint. The caller is
// expected to call Serve (and eventually Unmount) on the result.
func Mount(mountpoint string, lib *library.Library) (*fuse.Server, error) {
	nfs := pathfs.NewPathNodeFs(NewFs(lib, defaultCacheSize), nil)
	opts := nodefs.NewOptions()
	if mlog.IsEnabled() {
		opts.Debug = true
	}
	server, _, err := nodefs.MountRoot(mountpoint, nfs.Root(), opts)
	if err != nil {
		return nil, err
	}
	mlog.Printf2("fs/fs", "Mount %q", mountpoint)
	return server, nil
}
