package quadtree

// orderedList is the draw order: a doubly linked list threaded through the
// items themselves, so an attached item knows its own slot and can be unlinked
// in O(1).
type orderedList struct {
	head, tail *Item
	len        int
}

// insertSorted links it after the last item it does not sort before. The scan
// starts at the tail, so items with equal keys keep their insertion order and
// appending an already sorted sequence costs O(1) per item.
func (l *orderedList) insertSorted(it *Item, before func(p, q *Item) bool) {
	p := l.tail
	for p != nil && before(it, p) {
		p = p.prev
	}
	l.insertAfter(it, p)
}

// insertAfter links it directly after mark. A nil mark inserts at the head.
func (l *orderedList) insertAfter(it, mark *Item) {
	it.prev = mark
	if mark == nil {
		it.next = l.head
		l.head = it
	} else {
		it.next = mark.next
		mark.next = it
	}
	if it.next != nil {
		it.next.prev = it
	} else {
		l.tail = it
	}
	l.len++
}

func (l *orderedList) remove(it *Item) {
	if it.prev != nil {
		it.prev.next = it.next
	} else {
		l.head = it.next
	}
	if it.next != nil {
		it.next.prev = it.prev
	} else {
		l.tail = it.prev
	}
	it.prev = nil
	it.next = nil
	l.len--
}

// detachAll empties the list and returns its items in order.
func (l *orderedList) detachAll() []*Item {
	items := make([]*Item, 0, l.len)
	for it := l.head; it != nil; {
		next := it.next
		it.prev = nil
		it.next = nil
		items = append(items, it)
		it = next
	}
	l.head = nil
	l.tail = nil
	l.len = 0
	return items
}
