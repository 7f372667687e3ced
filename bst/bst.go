/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 10 11:03:27 2026 mstenber
 * Last modified: Fri Oct 16 19:48:31 2026 mstenber
 * Edit time:     97 min
 *
 */

// bst package provides an unbalanced binary search tree of strings,
// ordered by plain (byte-lexicographic) string comparison.
//
// Keys less than a node's key live in its left subtree, and keys
// greater than or equal to it in the right one. Duplicates are
// therefore kept, and they come out of the in-order traversal in the
// order they were inserted.
//
// There is no rebalancing, so sorted input produces a tree as deep as
// it is long; all walks are iterative for that reason.
package bst

import (
	"fmt"

	"github.com/fingon/go-bookshelf/mlog"
)

type node struct {
	key         string
	left, right *node
}

// Tree is the binary search tree. The zero value is an empty tree,
// ready to use. It is not safe for concurrent use; see LockedTree.
type Tree struct {
	root  *node
	count int
}

func (self *Tree) String() string {
	return fmt.Sprintf("bst{%p,n:%d}", self, self.count)
}

// Insert adds key to the tree. It always succeeds; equal keys are
// placed in the right subtree of the first equal node on the path.
func (self *Tree) Insert(key string) {
	mlog.Printf2("bst/bst", "%v.Insert %q", self, key)
	np := &self.root
	for *np != nil {
		n := *np
		if key < n.key {
			np = &n.left
		} else {
			np = &n.right
		}
	}
	*np = &node{key: key}
	self.count++
}

// Search returns whether key is in the tree.
func (self *Tree) Search(key string) bool {
	n := self.root
	for n != nil {
		switch {
		case key == n.key:
			mlog.Printf2("bst/bst", "%v.Search %q found", self, key)
			return true
		case key < n.key:
			n = n.left
		default:
			n = n.right
		}
	}
	mlog.Printf2("bst/bst", "%v.Search %q not found", self, key)
	return false
}

// Iterate calls cb with every key in non-decreasing order, stopping
// when cb returns false.
func (self *Tree) Iterate(cb func(key string) bool) {
	var stack []*node
	n := self.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !cb(n.key) {
			return
		}
		n = n.right
	}
}

// InorderTraversal returns all keys (duplicates included) sorted.
func (self *Tree) InorderTraversal() []string {
	keys := make([]string, 0, self.count)
	self.Iterate(func(key string) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Len returns the number of inserted keys.
func (self *Tree) Len() int {
	return self.count
}

// Depth returns the number of levels in the tree; 0 if it is empty.
func (self *Tree) Depth() int {
	depth := 0
	level := make([]*node, 0, 1)
	if self.root != nil {
		level = append(level, self.root)
	}
	for len(level) > 0 {
		depth++
		next := make([]*node, 0, 2*len(level))
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return depth
}

type bounds struct {
	n *node
	// lo is inclusive and hi exclusive, when set
	lo, hi *string
}

// CheckTreeStructure verifies the ordering of every node against
// all of its ancestors, and the node count. It panics if the tree is
// broken; it is meant for tests and debugging only.
func (self *Tree) CheckTreeStructure() {
	count := 0
	stack := []bounds{{n: self.root}}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := b.n
		if n == nil {
			continue
		}
		count++
		if b.lo != nil && n.key < *b.lo {
			mlog.Panicf("tree broke: %q < lower bound %q", n.key, *b.lo)
		}
		if b.hi != nil && n.key >= *b.hi {
			mlog.Panicf("tree broke: %q >= upper bound %q", n.key, *b.hi)
		}
		stack = append(stack,
			bounds{n: n.left, lo: b.lo, hi: &n.key},
			bounds{n: n.right, lo: &n.key, hi: b.hi})
	}
	if count != self.count {
		mlog.Panicf("tree broke: %d nodes, expected %d", count, self.count)
	}
}
