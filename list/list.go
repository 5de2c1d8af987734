package list

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyList       = errors.New("empty list")
)

type node[T comparable] struct {
	item T
	next *node[T]
}

// LinkedList is a singly linked list. It keeps a reference to its last node so
// that Append is O(1); it is still not doubly linked.
//
// The zero value is an empty list ready to use.
type LinkedList[T comparable] struct {
	front  *node[T]
	end    *node[T]
	length int
}

func New[T comparable](items ...T) *LinkedList[T] {
	l := &LinkedList[T]{}
	for _, item := range items {
		l.Append(item)
	}
	return l
}

func (l *LinkedList[T]) Len() int {
	return l.length
}

func (l *LinkedList[T]) Append(item T) {
	n := &node[T]{item: item}
	if l.front == nil {
		l.front = n
	} else {
		l.end.next = n
	}
	l.end = n
	l.length++
}

// Insert places item at index. Any index past the end appends.
func (l *LinkedList[T]) Insert(item T, index int) error {
	if index < 0 {
		return fmt.Errorf("insert at %v: %w", index, ErrIndexOutOfRange)
	}
	if index >= l.length {
		l.Append(item)
		return nil
	}
	n := &node[T]{item: item}
	if index == 0 {
		n.next, l.front = l.front, n
		l.length++
		return nil
	}
	prev := l.at(index - 1)
	n.next, prev.next = prev.next, n
	l.length++
	return nil
}

// Pop removes and returns the item at index.
func (l *LinkedList[T]) Pop(index int) (T, error) {
	var zero T
	if l.front == nil {
		return zero, fmt.Errorf("pop from empty list: %w", ErrIndexOutOfRange)
	}
	if index < 0 || index >= l.length {
		return zero, fmt.Errorf("pop index %v of %v: %w", index, l.length, ErrIndexOutOfRange)
	}
	if index == 0 {
		item := l.front.item
		if l.front == l.end {
			l.front, l.end = nil, nil
		} else {
			l.front = l.front.next
		}
		l.length--
		return item, nil
	}
	prev := l.at(index - 1)
	removed := prev.next
	prev.next, removed.next = removed.next, nil
	if index == l.length-1 {
		l.end = prev
	}
	l.length--
	return removed.item, nil
}

func (l *LinkedList[T]) PopLast() (T, error) {
	return l.Pop(l.length - 1)
}

// Remove deletes the first item equal to value and reports whether there was one.
func (l *LinkedList[T]) Remove(value T) bool {
	if l.front == nil {
		return false
	}
	if l.front.item == value {
		if l.front == l.end {
			l.front, l.end = nil, nil
		} else {
			l.front = l.front.next
		}
		l.length--
		return true
	}
	prev, curr := l.front, l.front.next
	for curr != nil {
		if curr.item == value {
			prev.next = curr.next
			if curr == l.end {
				l.end = prev
			}
			curr.next = nil
			l.length--
			return true
		}
		prev, curr = curr, curr.next
	}
	return false
}

func (l *LinkedList[T]) Get(index int) (T, error) {
	if index < 0 || index >= l.length {
		var zero T
		return zero, fmt.Errorf("get index %v of %v: %w", index, l.length, ErrIndexOutOfRange)
	}
	return l.at(index).item, nil
}

func (l *LinkedList[T]) Contains(item T) bool {
	for n := l.front; n != nil; n = n.next {
		if n.item == item {
			return true
		}
	}
	return false
}

// Last returns the item held by the end node.
func (l *LinkedList[T]) Last() (T, bool) {
	if l.end == nil {
		var zero T
		return zero, false
	}
	return l.end.item, true
}

// ForEach calls c for every item front to back and stops once c returns false.
func (l *LinkedList[T]) ForEach(c func(index int, item T) bool) {
	i := 0
	for n := l.front; n != nil; n = n.next {
		if !c(i, n.item) {
			return
		}
		i++
	}
}

func (l *LinkedList[T]) ToSlice() []T {
	res := make([]T, 0, l.length)
	for n := l.front; n != nil; n = n.next {
		res = append(res, n.item)
	}
	return res
}

func (l *LinkedList[T]) String() string {
	return fmt.Sprint(l.ToSlice())
}

// Maximum returns the largest item of a non-empty list.
func Maximum[T cmp.Ordered](l *LinkedList[T]) (T, error) {
	if l.front == nil {
		var zero T
		return zero, ErrEmptyList
	}
	best := l.front.item
	for n := l.front.next; n != nil; n = n.next {
		if n.item > best {
			best = n.item
		}
	}
	return best, nil
}

// at walks to the node at index, which the caller has already bounds checked.
func (l *LinkedList[T]) at(index int) *node[T] {
	n := l.front
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}
