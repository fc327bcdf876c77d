package game

import (
	"reflect"
	"testing"
)

func TestListPushHeadOrdersNewestFirst(t *testing.T) {
	l := newGameList()
	l.pushHead("a")
	l.pushHead("b")
	l.pushHead("c")

	if got, want := l.all(), []string{"c", "b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("all() = %v, want %v", got, want)
	}
	if l.headID() != "c" {
		t.Errorf("headID() = %q, want %q", l.headID(), "c")
	}
	if l.len() != 3 {
		t.Errorf("len() = %d, want 3", l.len())
	}
}

func TestListRemoveHead(t *testing.T) {
	l := newGameList()
	l.pushHead("a")
	l.pushHead("b")

	if !l.remove("b") {
		t.Fatal("remove(b) = false, want true")
	}
	if got, want := l.all(), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("all() = %v, want %v", got, want)
	}
	if l.contains("b") {
		t.Error("contains(b) = true after removal")
	}
	if !l.wasRemoved("b") {
		t.Error("wasRemoved(b) = false, want true")
	}
}

func TestListRemoveMiddleAndTail(t *testing.T) {
	l := newGameList()
	l.pushHead("a")
	l.pushHead("b")
	l.pushHead("c")

	if !l.remove("b") {
		t.Fatal("remove(b) = false, want true")
	}
	if got, want := l.all(), []string{"c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after middle removal all() = %v, want %v", got, want)
	}

	// Tail removal patches the predecessor's link.
	if !l.remove("a") {
		t.Fatal("remove(a) = false, want true")
	}
	if next, ok := l.nextOf("c"); !ok || next != "" {
		t.Errorf("nextOf(c) = (%q, %v), want (\"\", true)", next, ok)
	}
}

func TestListRemoveUnknownAndTwice(t *testing.T) {
	l := newGameList()
	l.pushHead("a")

	if l.remove("zz") {
		t.Error("remove(zz) = true for an id never present")
	}
	if !l.remove("a") {
		t.Fatal("remove(a) = false, want true")
	}
	if l.remove("a") {
		t.Error("second remove(a) = true, want false")
	}
	if l.wasRemoved("zz") {
		t.Error("wasRemoved(zz) = true for an id never present")
	}
}

func TestListReinsertIgnored(t *testing.T) {
	l := newGameList()
	l.pushHead("a")
	l.remove("a")
	l.pushHead("a")

	if l.contains("a") {
		t.Error("removed id re-entered the list")
	}
	if l.len() != 0 {
		t.Errorf("len() = %d, want 0", l.len())
	}
}

func TestListEmpty(t *testing.T) {
	l := newGameList()
	if l.headID() != "" {
		t.Errorf("headID() = %q on empty list", l.headID())
	}
	if _, ok := l.nextOf("a"); ok {
		t.Error("nextOf on empty list reported ok")
	}
	if got := l.all(); len(got) != 0 {
		t.Errorf("all() = %v on empty list", got)
	}
}
