package web

import "testing"

func TestCacheAddAndIndex(t *testing.T) {
	c := newCache(3)

	if c.index(0xABCD) != -1 {
		t.Fatal("empty cache reported a hit")
	}

	slot := c.add(0xABCD, []byte{1})
	if got := c.index(0xABCD); got != slot {
		t.Fatalf("index = %d, want %d", got, slot)
	}
}

func TestCacheEviction(t *testing.T) {
	c := newCache(2)
	c.add(1, []byte{1})
	c.add(2, []byte{2})
	c.add(3, []byte{3}) // evicts hash 1

	if c.index(1) != -1 {
		t.Fatal("evicted entry still indexed")
	}
	if c.index(2) == -1 || c.index(3) == -1 {
		t.Fatal("recent entries missing")
	}
}

func TestCacheZeroHashNeverMatchesEmptySlots(t *testing.T) {
	c := newCache(4)
	if c.index(0) != -1 {
		t.Fatal("unfilled slot matched hash zero")
	}
}
