package collision

import (
	"fmt"
	"sort"
)

// DefaultContactCap is the nominal number of contacts a single sweep keeps.
const DefaultContactCap = 8

// OverflowPolicy decides what happens when a sweep finds more contacts than
// the list's nominal capacity.
type OverflowPolicy uint8

const (
	// OverflowGrow keeps every contact; the list grows past its capacity.
	OverflowGrow OverflowPolicy = iota
	// OverflowDrop discards contacts found after the list is full.
	OverflowDrop
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowGrow:
		return "grow"
	case OverflowDrop:
		return "drop"
	}
	return fmt.Sprintf("OverflowPolicy(%d)", uint8(p))
}

// ParseOverflowPolicy accepts "grow" or "drop"; empty means grow.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "grow":
		return OverflowGrow, nil
	case "drop":
		return OverflowDrop, nil
	}
	return OverflowGrow, fmt.Errorf("unknown contact overflow policy %q", s)
}

// ContactList is an insertion-ordered list of contacts with a nominal
// capacity. Overflow is never silent: Overflowed and Dropped report how
// often the capacity was exceeded.
type ContactList struct {
	items      []Contact
	capacity   int
	policy     OverflowPolicy
	overflowed int
	dropped    int
}

// NewContactList creates a list with the given nominal capacity (DefaultContactCap if <= 0).
func NewContactList(capacity int, policy OverflowPolicy) *ContactList {
	if capacity <= 0 {
		capacity = DefaultContactCap
	}
	return &ContactList{
		items:    make([]Contact, 0, capacity),
		capacity: capacity,
		policy:   policy,
	}
}

// Push appends c. It returns false when the contact was dropped.
func (l *ContactList) Push(c Contact) bool {
	if len(l.items) >= l.capacity {
		l.overflowed++
		if l.policy == OverflowDrop {
			l.dropped++
			return false
		}
	}
	l.items = append(l.items, c)
	return true
}

func (l *ContactList) Len() int               { return len(l.items) }
func (l *ContactList) At(i int) *Contact      { return &l.items[i] }
func (l *ContactList) Capacity() int          { return l.capacity }
func (l *ContactList) Overflowed() int        { return l.overflowed }
func (l *ContactList) Dropped() int           { return l.dropped }
func (l *ContactList) Policy() OverflowPolicy { return l.policy }

// All returns the live backing slice. It is invalidated by the next Push or Reset.
func (l *ContactList) All() []Contact { return l.items }

// Clone returns a copy of the contacts that survives Reset.
func (l *ContactList) Clone() []Contact {
	out := make([]Contact, len(l.items))
	copy(out, l.items)
	return out
}

// SortByTouchDist orders contacts by ascending TouchDist, keeping insertion
// order among ties.
func (l *ContactList) SortByTouchDist() {
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.items[i].TouchDist < l.items[j].TouchDist
	})
}

// Truncate keeps the first n contacts.
func (l *ContactList) Truncate(n int) {
	if n < len(l.items) {
		l.items = l.items[:n]
	}
}

// Reset empties the list and clears the overflow counters, keeping its storage.
func (l *ContactList) Reset() {
	l.items = l.items[:0]
	l.overflowed = 0
	l.dropped = 0
}
