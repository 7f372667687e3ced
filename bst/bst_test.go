/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 10 12:31:50 2026 mstenber
 * Last modified: Fri Oct 16 20:02:44 2026 mstenber
 * Edit time:     71 min
 *
 */

package bst

import (
	"fmt"
	"sort"
	"testing"

	"github.com/fingon/go-bookshelf/util"
	"github.com/google/go-cmp/cmp"
	"github.com/stvp/assert"
)

var titles = []string{
	"Harry Potter",
	"The Hobbit",
	"Sherlock Holmes",
	"Gone Girl",
	"A Brief History of Time",
	"The Selfish Gene",
	"Steve Jobs",
	"Becoming",
}

func newTree(keys ...string) *Tree {
	var t Tree
	for _, k := range keys {
		t.Insert(k)
	}
	return &t
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	var tr Tree
	assert.Equal(t, tr.Len(), 0)
	assert.Equal(t, tr.Depth(), 0)
	assert.Equal(t, len(tr.InorderTraversal()), 0)
	assert.True(t, !tr.Search(""))
	assert.True(t, !tr.Search("x"))
	tr.CheckTreeStructure()
}

func TestLibraryTitles(t *testing.T) {
	t.Parallel()
	tr := newTree(titles...)
	tr.CheckTreeStructure()
	expected := []string{
		"A Brief History of Time",
		"Becoming",
		"Gone Girl",
		"Harry Potter",
		"Sherlock Holmes",
		"Steve Jobs",
		"The Hobbit",
		"The Selfish Gene",
	}
	if diff := cmp.Diff(expected, tr.InorderTraversal()); diff != "" {
		t.Errorf("InorderTraversal mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, tr.Len(), 8)
	// Harry Potter / Gone Girl, The Hobbit / A Brief.., Sherlock
	// Holmes, The Selfish Gene / Becoming, Steve Jobs
	assert.Equal(t, tr.Depth(), 4)

	assert.True(t, tr.Search("Sherlock Holmes"))
	assert.True(t, !tr.Search("Inferno"))
	assert.True(t, !tr.Search(""))
	for _, k := range titles {
		assert.True(t, tr.Search(k), k)
	}
	// exact match only
	assert.True(t, !tr.Search("sherlock holmes"))
	assert.True(t, !tr.Search("Sherlock"))
	assert.True(t, !tr.Search("Sherlock Holmes "))
}

func TestDuplicates(t *testing.T) {
	t.Parallel()
	tr := newTree("Dune", "Dune")
	assert.Equal(t, tr.InorderTraversal(), []string{"Dune", "Dune"})
	assert.True(t, tr.Search("Dune"))
	// tie goes right
	assert.True(t, tr.root.left == nil)
	assert.True(t, tr.root.right != nil)
	assert.Equal(t, tr.root.right.key, "Dune")
	tr.CheckTreeStructure()

	// duplicates end up adjacent even with other keys around
	tr = newTree("M", "Dune", "A", "Z", "Dune", "E", "Dune")
	assert.Equal(t, tr.InorderTraversal(), []string{"A", "Dune", "Dune", "Dune", "E", "M", "Z"})
	tr.CheckTreeStructure()
}

func TestDuplicatesKeepInsertionOrder(t *testing.T) {
	t.Parallel()
	// Equal keys are indistinguishable as strings, so check the
	// nodes themselves: each later duplicate must be visited after
	// the earlier ones.
	tr := newTree("b", "a", "b", "c", "b")
	first := tr.root
	var seen []*node
	stack := []*node{}
	n := tr.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.key == "b" {
			seen = append(seen, n)
		}
		n = n.right
	}
	assert.Equal(t, len(seen), 3)
	assert.True(t, seen[0] == first)
	assert.True(t, seen[1] == first.right)
	// third one: right of first, right of second, left of 'c'
	assert.True(t, seen[2] == first.right.right.left)
}

func TestTwoKeys(t *testing.T) {
	t.Parallel()
	tr := newTree("Zebra", "Apple")
	assert.Equal(t, tr.InorderTraversal(), []string{"Apple", "Zebra"})
	assert.Equal(t, tr.Depth(), 2)
}

func TestIdempotentTraversal(t *testing.T) {
	t.Parallel()
	tr := newTree(titles...)
	assert.Equal(t, tr.InorderTraversal(), tr.InorderTraversal())
}

func TestIterateStops(t *testing.T) {
	t.Parallel()
	tr := newTree(titles...)
	var got []string
	tr.Iterate(func(key string) bool {
		got = append(got, key)
		return len(got) < 3
	})
	assert.Equal(t, got, []string{"A Brief History of Time", "Becoming", "Gone Girl"})
}

func TestByteOrder(t *testing.T) {
	t.Parallel()
	// upper case sorts before lower case, and bytes are compared
	// as unsigned
	tr := newTree("b", "B", "a", "\xff", "", "ä", "A")
	assert.Equal(t, tr.InorderTraversal(), []string{"", "A", "B", "a", "b", "ä", "\xff"})
	assert.True(t, tr.Search(""))
	tr.CheckTreeStructure()
}

func TestSortedInputIsDeep(t *testing.T) {
	t.Parallel()
	n := 20000
	var tr Tree
	for i := 0; i < n; i++ {
		tr.Insert(fmt.Sprintf("%08d", i))
	}
	assert.Equal(t, tr.Len(), n)
	assert.Equal(t, tr.Depth(), n)
	keys := tr.InorderTraversal()
	assert.Equal(t, len(keys), n)
	assert.True(t, sort.StringsAreSorted(keys))
	assert.True(t, tr.Search(fmt.Sprintf("%08d", n-1)))
	assert.True(t, !tr.Search(fmt.Sprintf("%08d", n)))
	tr.CheckTreeStructure()
}

func TestCheckTreeStructureDetectsBreakage(t *testing.T) {
	t.Parallel()
	tr := newTree("m", "c", "x")
	// 'z' is not allowed on the left of 'm'
	tr.root.left.right = &node{key: "z"}
	tr.count++
	defer func() {
		assert.True(t, recover() != nil)
	}()
	tr.CheckTreeStructure()
}

func TestRandomized(t *testing.T) {
	t.Parallel()
	r := util.GetSeededRng()
	alphabet := "abcAB "
	for round := 0; round < 50; round++ {
		var tr Tree
		inserted := map[string]bool{}
		all := []string{}
		for i := r.Intn(200); i > 0; i-- {
			b := make([]byte, r.Intn(4))
			for j := range b {
				b[j] = alphabet[r.Intn(len(alphabet))]
			}
			k := string(b)
			tr.Insert(k)
			inserted[k] = true
			all = append(all, k)
		}
		tr.CheckTreeStructure()
		assert.Equal(t, tr.Len(), len(all))

		sort.Strings(all)
		got := tr.InorderTraversal()
		if diff := cmp.Diff(all, got); diff != "" {
			t.Fatalf("round %d: traversal is not the sorted multiset (-want +got):\n%s", round, diff)
		}
		for k := range inserted {
			assert.True(t, tr.Search(k), k)
		}
		for i := 0; i < 20; i++ {
			k := fmt.Sprintf("%c%d", alphabet[r.Intn(len(alphabet))], i)
			assert.True(t, !tr.Search(k), k)
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	r := util.GetSeededRng()
	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = fmt.Sprintf("%d", r.Int63())
	}
	var tr Tree
	b.ResetTimer()
	for _, k := range keys {
		tr.Insert(k)
	}
}

func BenchmarkSearch(b *testing.B) {
	tr := newTree(titles...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Search(titles[i%len(titles)])
	}
}
