// Package memory implements the ability to read and write blocks to memory
// using a slice.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ledgerd/node/foundation/blockchain/database"
)

// Memory represents the storage implementation for reading and storing
// blocks in memory using a slice. This implements the database.Storage
// interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.Block
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write stores the block at the end of the chain. The block must carry the
// next index, starting with 1 for the genesis block.
func (m *Memory) Write(block database.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := len(m.blocks)
	if uint64(l+1) != block.Index {
		return fmt.Errorf("%w: got blk[%d], exp blk[%d]", database.ErrBlockOutOfOrder, block.Index, l+1)
	}

	m.blocks = append(m.blocks, block)

	return nil
}

// GetBlock returns the block with the specified 1-based index.
func (m *Memory) GetBlock(index uint64) (database.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index == 0 || index > uint64(len(m.blocks)) {
		return database.Block{}, fmt.Errorf("blk[%d] does not exist", index)
	}

	return m.blocks[index-1], nil
}

// Len returns the number of blocks stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blocks)
}

// ForEach returns an iterator to walk through all the blocks
// starting with block 1.
func (m *Memory) ForEach() database.Iterator {
	return &memoryIterator{storage: m, current: 1}
}

// Reset will clear out the chain.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = nil
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through the stored blocks. This implements the database.Iterator
// interface.
type memoryIterator struct {
	storage *Memory // Access to the storage API.
	current uint64  // Index of the next block to return.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block. Past the last block it returns an error
// and the iterator is done.
func (mi *memoryIterator) Next() (database.Block, error) {
	if mi.eoc {
		return database.Block{}, errors.New("end of chain")
	}

	block, err := mi.storage.GetBlock(mi.current)
	if err != nil {
		mi.eoc = true
	}

	mi.current++

	return block, err
}

// Done returns the end of chain value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
