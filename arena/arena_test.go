package arena

import (
	"errors"
	"testing"
)

func TestChainAcquireGrowsByBlocks(t *testing.T) {
	c := NewChain[int](2, 0)

	for i := 0; i < 5; i++ {
		ref, slot, err := c.Acquire()
		if err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
		if ref.Index() != i {
			t.Errorf("ref index = %d, want %d", ref.Index(), i)
		}
		*slot = i * 10
	}

	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
	if c.Blocks() != 3 {
		t.Errorf("Blocks() = %d, want 3", c.Blocks())
	}
	for i := 0; i < 5; i++ {
		if got := *c.At(RefAt(i)); got != i*10 {
			t.Errorf("At(%d) = %d, want %d", i, got, i*10)
		}
	}
}

func TestChainSlotsStayPutWhenGrowing(t *testing.T) {
	c := NewChain[int](1, 0)
	_, first, _ := c.Acquire()
	*first = 7

	for i := 0; i < 16; i++ {
		if _, _, err := c.Acquire(); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
	}

	if c.At(RefAt(0)) != first {
		t.Error("first slot moved after growth")
	}
	if *first != 7 {
		t.Errorf("first slot = %d, want 7", *first)
	}
}

func TestChainExhausted(t *testing.T) {
	c := NewChain[int](2, 1)

	for i := 0; i < 2; i++ {
		if _, _, err := c.Acquire(); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	if err := c.Reserve(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Reserve() = %v, want ErrExhausted", err)
	}
	if _, _, err := c.Acquire(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Acquire() = %v, want ErrExhausted", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestChainReserveDoesNotCount(t *testing.T) {
	c := NewChain[int](4, 0)
	for i := 0; i < 3; i++ {
		if err := c.Reserve(); err != nil {
			t.Fatalf("Reserve: %v", err)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Blocks() != 1 {
		t.Errorf("Blocks() = %d, want 1", c.Blocks())
	}
}

func TestChainAtOutOfRange(t *testing.T) {
	c := NewChain[int](4, 0)
	c.Acquire()

	if c.At(Nil) != nil {
		t.Error("At(Nil) should be nil")
	}
	if c.At(RefAt(1)) != nil {
		t.Error("At past the last acquired slot should be nil")
	}
}

func TestChainReleaseAll(t *testing.T) {
	c := NewChain[string](2, 0)
	ref, _, _ := c.Acquire()
	c.Acquire()
	c.Acquire()

	c.ReleaseAll()
	c.ReleaseAll()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.At(ref) != nil {
		t.Error("released ref still resolves")
	}
	if _, _, err := c.Acquire(); err != nil {
		t.Errorf("Acquire after ReleaseAll: %v", err)
	}
}

func TestChainAllInOrder(t *testing.T) {
	c := NewChain[int](3, 0)
	for i := 0; i < 7; i++ {
		_, slot, _ := c.Acquire()
		*slot = i
	}

	var got []int
	for ref, v := range c.All() {
		if ref.Index() != *v {
			t.Errorf("ref %d holds %d", ref.Index(), *v)
		}
		got = append(got, *v)
		if len(got) == 4 {
			break
		}
	}
	if len(got) != 4 {
		t.Errorf("yielded %d values before break, want 4", len(got))
	}
}

func TestZeroChainUsable(t *testing.T) {
	var c Chain[int]
	ref, _, err := c.Acquire()
	if err != nil {
		t.Fatalf("Acquire on zero chain: %v", err)
	}
	if ref.IsNil() {
		t.Error("Acquire returned Nil")
	}
}
