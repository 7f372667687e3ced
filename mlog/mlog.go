/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 10 09:12:40 2026 mstenber
 * Last modified: Fri Oct 16 21:03:11 2026 mstenber
 * Edit time:     54 min
 *
 */

// mlog is maybe-log. It is a small wrapper of the standard 'log'
// that only prints what has been asked for:
//
// - MLOG environment variable (or -mlog flag) provides a regular
// expression, which is matched against the tag given to Printf2 (or
// the caller's file name with Printf); by default everything is off,
// and disabled logging costs only an atomic load
//
// - call stack depth relative to the shallowest seen call is shown as
// '.' prefix, so nested calls are easy to follow in traces
package mlog

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	stateUninitialized int32 = iota
	stateDisabled
	stateEnabled
)

const maxDepth = 100

var status = stateUninitialized

var flagPattern = flag.String("mlog", "", "Enable logging based on the given file/tag regular expression")

// mutex guards everything below
var mutex sync.Mutex
var logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
var pattern string
var patternRegexp *regexp.Regexp
var tag2Debug map[string]bool
var minDepth = maxDepth
var callers = make([]uintptr, maxDepth)

// Reset returns the module to its initial state; the next log call
// re-reads the pattern from flag/environment.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	atomic.StoreInt32(&status, stateUninitialized)
	minDepth = maxDepth
}

// IsEnabled can be used to check if mlog is in use at all before
// doing something expensive.
func IsEnabled() bool {
	return atomic.LoadInt32(&status) != stateDisabled
}

// SetLogger overrides the output logger. The returned function
// restores the previous one.
func SetLogger(l *log.Logger) (undo func()) {
	mutex.Lock()
	defer mutex.Unlock()
	old := logger
	logger = l
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		logger = old
	}
}

// SetPattern overrides the pattern from flag/environment. The
// returned function restores the previous one.
func SetPattern(p string) (undo func()) {
	mutex.Lock()
	defer mutex.Unlock()
	old := pattern
	setPattern(p)
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		setPattern(old)
	}
}

func setPattern(p string) {
	pattern = p
	minDepth = maxDepth
	if p == "" {
		atomic.StoreInt32(&status, stateDisabled)
		return
	}
	patternRegexp = regexp.MustCompile(p)
	tag2Debug = make(map[string]bool)
	atomic.StoreInt32(&status, stateEnabled)
}

func initialize() {
	p := os.Getenv("MLOG")
	if *flagPattern != "" {
		p = *flagPattern
	}
	setPattern(p)
}

// Printf is drop-in replacement of log.Printf. It uses the caller's
// file name as the tag, which costs a runtime.Caller when enabled.
func Printf(format string, args ...interface{}) {
	if atomic.LoadInt32(&status) == stateDisabled {
		return
	}
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return
	}
	Printf2(file, format, args...)
}

// Printf2 logs with explicitly provided tag; conventionally the
// package-relative path of the calling file without extension.
func Printf2(tag string, format string, args ...interface{}) {
	if atomic.LoadInt32(&status) == stateDisabled {
		return
	}
	mutex.Lock()
	defer mutex.Unlock()
	if atomic.LoadInt32(&status) == stateUninitialized {
		initialize()
		if pattern == "" {
			return
		}
	}
	debug, ok := tag2Debug[tag]
	if !ok {
		debug = patternRegexp.MatchString(tag)
		tag2Debug[tag] = debug
	}
	if !debug {
		return
	}
	depth := runtime.Callers(1, callers)
	if depth < minDepth {
		minDepth = depth
	}
	depth -= minDepth
	if depth > 0 {
		format = strings.Repeat(".", depth) + format
	}
	logger.Printf(format, args...)
}

// Panicf logs the message regardless of pattern and then panics
// with it.
func Panicf(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	mutex.Lock()
	l := logger
	mutex.Unlock()
	l.Panic(s)
}
