// Package arena provides a bump allocator that hands out one slot at a time
// from a chain of fixed-size blocks. Slots are addressed by Ref handles and are
// never released individually; the whole chain is released at once.
package arena

import (
	"errors"
	"iter"
)

// DefaultBlockSize is the number of slots per block when none is configured.
const DefaultBlockSize = 256

var ErrExhausted = errors.New("arena exhausted")

// Ref addresses a slot in a Chain. The zero Ref is the null handle.
type Ref uint32

const Nil Ref = 0

func (r Ref) IsNil() bool {
	return r == Nil
}

// Index returns the zero-based slot position of r, or -1 for Nil.
func (r Ref) Index() int {
	return int(r) - 1
}

func RefAt(index int) Ref {
	return Ref(index + 1)
}

// Chain is a growable sequence of fixed-size blocks. Blocks never move once
// allocated, so a slot pointer stays valid until ReleaseAll.
type Chain[T any] struct {
	blocks    [][]T
	blockSize int
	maxBlocks int
	count     int
}

// NewChain returns a chain with the given block size. A maxBlocks of zero
// means the chain may grow without limit.
func NewChain[T any](blockSize, maxBlocks int) *Chain[T] {
	c := &Chain[T]{}
	c.Init(blockSize, maxBlocks)
	return c
}

func (c *Chain[T]) Init(blockSize, maxBlocks int) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if maxBlocks < 0 {
		maxBlocks = 0
	}
	c.blocks = nil
	c.blockSize = blockSize
	c.maxBlocks = maxBlocks
	c.count = 0
}

// Reserve makes sure the next Acquire will not need to grow the chain.
func (c *Chain[T]) Reserve() error {
	if c.blockSize == 0 {
		c.blockSize = DefaultBlockSize
	}
	if c.count < len(c.blocks)*c.blockSize {
		return nil
	}
	if c.maxBlocks > 0 && len(c.blocks) >= c.maxBlocks {
		return ErrExhausted
	}
	c.blocks = append(c.blocks, make([]T, c.blockSize))
	return nil
}

// Acquire hands out the next zeroed slot.
func (c *Chain[T]) Acquire() (Ref, *T, error) {
	if err := c.Reserve(); err != nil {
		return Nil, nil, err
	}
	idx := c.count
	c.count++
	return RefAt(idx), &c.blocks[idx/c.blockSize][idx%c.blockSize], nil
}

// At returns the slot for r, or nil when r is Nil or was never acquired.
func (c *Chain[T]) At(r Ref) *T {
	idx := r.Index()
	if idx < 0 || idx >= c.count {
		return nil
	}
	return &c.blocks[idx/c.blockSize][idx%c.blockSize]
}

func (c *Chain[T]) Len() int {
	return c.count
}

func (c *Chain[T]) Blocks() int {
	return len(c.blocks)
}

// All yields every acquired slot in acquisition order.
func (c *Chain[T]) All() iter.Seq2[Ref, *T] {
	return func(yield func(Ref, *T) bool) {
		for idx := 0; idx < c.count; idx++ {
			if !yield(RefAt(idx), &c.blocks[idx/c.blockSize][idx%c.blockSize]) {
				return
			}
		}
	}
}

// ReleaseAll drops every block. Refs handed out before are invalid afterwards.
func (c *Chain[T]) ReleaseAll() {
	c.blocks = nil
	c.count = 0
}
