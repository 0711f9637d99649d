package disposable

import (
	"testing"
)

func TestGroup_Close(t *testing.T) {
	b := newBinder(t)
	count := 0

	g := NewGroup()
	w1 := New(b, tracker{count: &count})
	w2 := New(b, tracker{count: &count})
	w3 := New(b, tracker{count: &count})
	for _, w := range []*Wrapper[tracker]{w1, w2, w3} {
		if err := g.Add(w); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if err := w1.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w2.Take(); err != nil {
		t.Fatal(err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}

	if err := g.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if w3.Holding() {
		t.Error("group close should dispose remaining members")
	}
	if count != 2 {
		t.Errorf("dispose called %d times, want 2", count)
	}
}

func TestGroup_AddRejected(t *testing.T) {
	b := newBinder(t)
	count := 0

	g := NewGroup()
	w := New(b, tracker{count: &count})
	_ = w.Close()
	if err := g.Add(w); !isDisposed(err) {
		t.Errorf("adding a closed wrapper: expected disposed error, got %v", err)
	}

	_ = g.Close()
	w2 := New(b, tracker{count: &count})
	defer w2.Close()
	if err := g.Add(w2); !isDisposed(err) {
		t.Errorf("adding to a closed group: expected disposed error, got %v", err)
	}
}
