package tree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xlab/treeprint"
)

// Tree is a recursive tree with any number of ordered subtrees per node.
// A tree without a root is empty, and an empty tree never has subtrees.
type Tree[T comparable] struct {
	root     T
	hasRoot  bool
	subtrees []*Tree[T]
}

func New[T comparable](root T, subtrees ...*Tree[T]) *Tree[T] {
	return &Tree[T]{
		root:     root,
		hasRoot:  true,
		subtrees: subtrees,
	}
}

func Empty[T comparable]() *Tree[T] {
	return &Tree[T]{}
}

// NewOptional builds a tree whose root may be absent (nil). An absent root with
// subtrees is a caller bug and panics.
func NewOptional[T comparable](root *T, subtrees []*Tree[T]) *Tree[T] {
	if root == nil {
		if len(subtrees) > 0 {
			panic("empty tree cannot have subtrees")
		}
		return Empty[T]()
	}
	return New(*root, subtrees...)
}

func (t *Tree[T]) Add(subtree *Tree[T]) {
	t.subtrees = append(t.subtrees, subtree)
}

func (t *Tree[T]) IsEmpty() bool {
	return !t.hasRoot
}

func (t *Tree[T]) Root() (T, bool) {
	return t.root, t.hasRoot
}

func (t *Tree[T]) Subtrees() []*Tree[T] {
	return slices.Clone(t.subtrees)
}

// Len returns the number of values stored in the tree.
func (t *Tree[T]) Len() int {
	if t.IsEmpty() {
		return 0
	}
	size := 1
	for _, subtree := range t.subtrees {
		size += subtree.Len()
	}
	return size
}

func (t *Tree[T]) Contains(item T) bool {
	return t.Find(item) != nil
}

// Find returns the first tree in preorder whose root is item, or nil.
func (t *Tree[T]) Find(item T) *Tree[T] {
	if t.IsEmpty() {
		return nil
	}
	if t.root == item {
		return t
	}
	for _, subtree := range t.subtrees {
		if found := subtree.Find(item); found != nil {
			return found
		}
	}
	return nil
}

// Remove deletes one occurrence of item and reports whether it did. A subtree
// emptied by the deletion is dropped.
func (t *Tree[T]) Remove(item T) bool {
	if t.IsEmpty() {
		return false
	}
	if t.root == item {
		t.deleteRoot()
		return true
	}
	i := -1
	for j, subtree := range t.subtrees {
		if subtree.Remove(item) {
			i = j
			break
		}
	}
	if i < 0 {
		return false
	}
	if t.subtrees[i].IsEmpty() {
		t.subtrees = slices.Delete(t.subtrees, i, i+1)
	}
	return true
}

// deleteRoot replaces the root with the root of the last subtree, whose own
// subtrees move up behind the remaining ones.
func (t *Tree[T]) deleteRoot() {
	if len(t.subtrees) == 0 {
		var zero T
		t.root, t.hasRoot = zero, false
		t.subtrees = nil
		return
	}
	last := len(t.subtrees) - 1
	chosen := t.subtrees[last]
	t.subtrees[last] = nil
	t.subtrees = append(t.subtrees[:last], chosen.subtrees...)
	t.root, t.hasRoot = chosen.root, chosen.hasRoot
}

// Equal reports whether both trees hold the same roots in the same shape.
func (t *Tree[T]) Equal(other *Tree[T]) bool {
	if other == nil {
		return false
	}
	if t.hasRoot != other.hasRoot || t.root != other.root || len(t.subtrees) != len(other.subtrees) {
		return false
	}
	for i, subtree := range t.subtrees {
		if !subtree.Equal(other.subtrees[i]) {
			return false
		}
	}
	return true
}

// Inline renders the tree on a single line, children in parentheses after
// their parent: 1(2 3(4)).
func (t *Tree[T]) Inline() string {
	if t.IsEmpty() {
		return "<empty>"
	}
	var b strings.Builder
	t.inline(&b)
	return b.String()
}

func (t *Tree[T]) inline(b *strings.Builder) {
	fmt.Fprint(b, t.root)
	if len(t.subtrees) == 0 {
		return
	}
	b.WriteByte('(')
	for i, subtree := range t.subtrees {
		if i > 0 {
			b.WriteByte(' ')
		}
		subtree.inline(b)
	}
	b.WriteByte(')')
}

func (t *Tree[T]) String() string {
	if t.IsEmpty() {
		return treeprint.NewWithRoot("<empty>").String()
	}
	printed := treeprint.NewWithRoot(fmt.Sprint(t.root))
	for _, subtree := range t.subtrees {
		subtree.print(printed)
	}
	return printed.String()
}

func (t *Tree[T]) print(parent treeprint.Tree) {
	if len(t.subtrees) == 0 {
		parent.AddNode(fmt.Sprint(t.root))
		return
	}
	branch := parent.AddBranch(fmt.Sprint(t.root))
	for _, subtree := range t.subtrees {
		subtree.print(branch)
	}
}
