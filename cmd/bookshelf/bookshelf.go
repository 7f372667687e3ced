/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Thu Oct 15 14:18:26 2026 mstenber
 * Last modified: Sat Oct 17 13:05:51 2026 mstenber
 * Edit time:     71 min
 *
 */

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fingon/go-bookshelf/fs"
	"github.com/fingon/go-bookshelf/library"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/fingon/go-bookshelf/server"
	"github.com/fingon/go-bookshelf/storage"
	"github.com/fingon/go-bookshelf/storage/factory"
	"github.com/pkg/errors"
)

var errUsage = errors.New("invalid arguments")

type options struct {
	backend, dir, name      string
	password, salt, address string
	sign                    bool
}

// openLibrary returns the library stored in the backend (or the
// default one if there is none yet). Backend is nil without dir.
func openLibrary(o options) (*library.Library, storage.Backend, error) {
	if o.dir == "" {
		return library.NewDefault(), nil, nil
	}
	conf := factory.CryptoConfiguration{
		BackendConfiguration: storage.BackendConfiguration{Directory: o.dir},
		BackendName:          o.backend,
		Password:             o.password,
		Salt:                 o.salt,
		SignOnly:             o.sign}
	be, err := factory.NewCryptoBackend(conf)
	if err != nil {
		return nil, nil, err
	}
	lib, err := library.Load(be, o.name)
	switch errors.Cause(err) {
	case nil:
	case storage.ErrNotFound:
		mlog.Printf2("cmd/bookshelf/bookshelf", "no %q yet, using default", o.name)
		lib = library.NewDefault()
	default:
		be.Close()
		return nil, nil, err
	}
	return lib, be, nil
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	signal.Stop(c)
}

func run(w io.Writer, o options, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	lib, be, err := openLibrary(o)
	if err != nil {
		return err
	}
	if be != nil {
		defer be.Close()
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "tree":
		lib.View(func(catalog *library.Catalog, sections []library.Entry) {
			err = library.Display(w, sections)
		})
		return err
	case "list":
		for i, t := range lib.Sorted() {
			fmt.Fprintf(w, "%d. %s\n", i+1, t)
		}
	case "search":
		if len(args) == 0 {
			return errUsage
		}
		for _, q := range args {
			found, err := lib.Search(q)
			if err != nil {
				return err
			}
			result := "Not Found"
			if found {
				result = "Found!"
			}
			fmt.Fprintf(w, "Searching for %q: %s\n", strings.TrimSpace(q), result)
		}
	case "info":
		if len(args) == 0 {
			return errUsage
		}
		for _, q := range args {
			b, err := lib.Lookup(q)
			if errors.Cause(err) == library.ErrNotFound {
				fmt.Fprintf(w, "%q: not in the library\n", strings.TrimSpace(q))
				continue
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\n", b)
		}
	case "stats":
		s := lib.Stats()
		fmt.Fprintf(w, "Books: %d\nTree depth: %d\nCategories: %d\nShelves: %d\n",
			s.Books, s.Depth, s.Categories, s.Shelves)
		fmt.Fprintf(w, "Oldest: %d\nNewest: %d\n", s.Oldest, s.Newest)
	case "add":
		if len(args) != 5 {
			return errUsage
		}
		year, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.Wrap(errUsage, err.Error())
		}
		book := library.Book{Title: args[0], Author: args[1], Year: year, Genre: args[3]}
		if err = lib.Add(book, args[4]); err != nil {
			return err
		}
		fmt.Fprintf(w, "Added %s\n", book)
		if be != nil {
			return library.Save(be, o.name, lib)
		}
	case "save":
		if be == nil {
			return errors.Wrap(errUsage, "save requires -dir")
		}
		return library.Save(be, o.name, lib)
	case "serve":
		s := server.Server{Address: o.address, Library: lib}.Init()
		fmt.Fprintf(w, "Serving at %s\n", s.Addr())
		waitForSignal()
		s.Close()
	case "mount":
		if len(args) != 1 {
			return errUsage
		}
		fuseServer, err := fs.Mount(args[0], lib)
		if err != nil {
			return err
		}
		go func() {
			waitForSignal()
			fuseServer.Unmount()
		}()
		// loop is here
		fuseServer.Serve()
	default:
		return errors.Wrapf(errUsage, "unknown command %q", cmd)
	}
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n\n%s [flags] COMMAND [ARGS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands: tree, list, search TITLE.., info TITLE.., stats,\n")
		fmt.Fprintf(os.Stderr, "  add TITLE AUTHOR YEAR GENRE SHELF, save, serve, mount MOUNTDIR\n\n")
		flag.PrintDefaults()
	}
	var o options
	flag.StringVar(&o.backend, "backend", "bolt",
		fmt.Sprintf("Backend to use (possible: %v)", factory.List()))
	flag.StringVar(&o.dir, "dir", "", "Storage directory (default: built-in library, nothing saved)")
	flag.StringVar(&o.name, "name", "library", "Name of the library in the storage")
	flag.StringVar(&o.password, "password", "", "Password (empty: no encryption)")
	flag.StringVar(&o.salt, "salt", "", "Salt")
	flag.BoolVar(&o.sign, "sign", false, "Authenticate instead of encrypting")
	flag.StringVar(&o.address, "address", "localhost:8280", "Address to use for server")
	flag.Parse()

	err := run(os.Stdout, o, flag.Args())
	if errors.Cause(err) == errUsage {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
