/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 14:20:05 2026 mstenber
 * Last modified: Fri Oct 16 19:51:12 2026 mstenber
 * Edit time:     12 min
 *
 */

package bst

import "github.com/fingon/go-bookshelf/util"

// LockedTree wraps Tree so that every operation holds a single
// exclusive lock over the whole tree.
type LockedTree struct {
	lock util.MutexLocked
	tree Tree
}

func (self *LockedTree) Insert(key string) {
	defer self.lock.Locked()()
	self.tree.Insert(key)
}

func (self *LockedTree) Search(key string) bool {
	defer self.lock.Locked()()
	return self.tree.Search(key)
}

// Iterate holds the lock for the whole walk; cb must not call back
// into the tree.
func (self *LockedTree) Iterate(cb func(key string) bool) {
	defer self.lock.Locked()()
	self.tree.Iterate(cb)
}

func (self *LockedTree) InorderTraversal() []string {
	defer self.lock.Locked()()
	return self.tree.InorderTraversal()
}

func (self *LockedTree) Len() int {
	defer self.lock.Locked()()
	return self.tree.Len()
}

func (self *LockedTree) Depth() int {
	defer self.lock.Locked()()
	return self.tree.Depth()
}

func (self *LockedTree) CheckTreeStructure() {
	defer self.lock.Locked()()
	self.tree.CheckTreeStructure()
}
