package buffer

import "testing"

func TestNewAndLen(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len = %d, want 8", b.Len())
	}

	if New(-1).Len() != 0 {
		t.Fatal("negative length should clamp to 0")
	}
}

func TestFromSliceAliases(t *testing.T) {
	s := []float64{1, 2, 3}
	b := FromSlice(s)

	b.Samples()[0] = 42
	if s[0] != 42 {
		t.Fatal("FromSlice should alias the slice")
	}
}

func TestResizeZeroesNewTail(t *testing.T) {
	b := New(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Resize(2)
	b.Resize(4)

	s := b.Samples()
	if s[0] != 1 || s[1] != 2 {
		t.Fatalf("prefix lost: %#v", s)
	}
	if s[2] != 0 || s[3] != 0 {
		t.Fatalf("stale tail after regrow: %#v", s)
	}
}

func TestCopyIndependent(t *testing.T) {
	b := New(2)
	b.Samples()[0] = 1

	c := b.Copy()
	c.Samples()[0] = 99

	if b.Samples()[0] != 1 {
		t.Fatal("Copy should not alias the original")
	}
}

func TestPoolReuse(t *testing.T) {
	p := NewPool()

	b := p.Get(16)
	if b.Len() != 16 {
		t.Fatalf("Len = %d, want 16", b.Len())
	}

	b.Samples()[0] = 3.5
	p.Put(b)

	// A pooled buffer comes back zeroed regardless of prior contents.
	c := p.Get(16)
	for i, v := range c.Samples() {
		if v != 0 {
			t.Fatalf("c[%d] = %v, want 0", i, v)
		}
	}

	p.Put(nil) // must not panic
}
