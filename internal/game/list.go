package game

// gameList is a singly-linked ordering of game ids backed by an append-only
// slot arena. Links are slot indexes with two sentinel values: slotEnd marks
// the last element of the chain and slotEmpty marks a slot whose id was
// removed. The pair lets a reader distinguish "removed because matched or
// closed" from "never present".
//
// Ids enter a list at most once over their lifetime, so slots are never
// reused and removal simply empties the slot. Head removal is O(1); removing
// anything else needs a predecessor scan from the head, an accepted cost of
// the singly-linked layout.
type gameList struct {
	ids   []string
	next  []int32
	slots map[string]int32 // id -> slot, kept for removed ids too
	head  int32
}

const (
	slotEnd   = int32(-1)
	slotEmpty = int32(-2)
)

func newGameList() *gameList {
	return &gameList{slots: make(map[string]int32), head: slotEnd}
}

// pushHead inserts id as the new first element. Inserting an id that is or
// ever was present is a programming error and is ignored.
func (l *gameList) pushHead(id string) {
	if _, seen := l.slots[id]; seen {
		return
	}
	slot := int32(len(l.ids))
	l.ids = append(l.ids, id)
	l.next = append(l.next, l.head)
	l.slots[id] = slot
	l.head = slot
}

// remove unlinks id from the chain and empties its slot. Returns false when
// the id is not currently an element.
func (l *gameList) remove(id string) bool {
	slot, seen := l.slots[id]
	if !seen || l.next[slot] == slotEmpty {
		return false
	}
	if l.head == slot {
		l.head = l.next[slot]
		l.next[slot] = slotEmpty
		return true
	}
	// Predecessor scan. The chain is short-lived in practice (ids leave on
	// join or close) so the linear walk is acceptable.
	for cur := l.head; cur != slotEnd; cur = l.next[cur] {
		if l.next[cur] == slot {
			l.next[cur] = l.next[slot]
			l.next[slot] = slotEmpty
			return true
		}
	}
	return false
}

// contains reports whether id is currently an element.
func (l *gameList) contains(id string) bool {
	slot, seen := l.slots[id]
	return seen && l.next[slot] != slotEmpty
}

// wasRemoved reports whether id was an element once and has been removed,
// as opposed to never having been present at all.
func (l *gameList) wasRemoved(id string) bool {
	slot, seen := l.slots[id]
	return seen && l.next[slot] == slotEmpty
}

// headID returns the first id in the chain, or "" when the list is empty.
func (l *gameList) headID() string {
	if l.head == slotEnd {
		return ""
	}
	return l.ids[l.head]
}

// nextOf returns the id following the given one, with ok=false when id is
// not an element. The last element reports next="".
func (l *gameList) nextOf(id string) (string, bool) {
	slot, seen := l.slots[id]
	if !seen || l.next[slot] == slotEmpty {
		return "", false
	}
	if l.next[slot] == slotEnd {
		return "", true
	}
	return l.ids[l.next[slot]], true
}

// all returns every id currently in the chain, in list order.
func (l *gameList) all() []string {
	out := []string{}
	for cur := l.head; cur != slotEnd; cur = l.next[cur] {
		out = append(out, l.ids[cur])
	}
	return out
}

func (l *gameList) len() int {
	n := 0
	for cur := l.head; cur != slotEnd; cur = l.next[cur] {
		n++
	}
	return n
}
