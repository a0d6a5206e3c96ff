// Package database handles the in memory ledger for the node: the append
// only chain of blocks and the pool of pending transactions, plus the
// hashing, proof of work and validation rules the chain is built on.
package database

import (
	"fmt"
	"sync"
	"time"
)

// Database manages the chain and the pending transaction pool. The chain is
// kept in the provided storage, the pool in memory. All access goes through
// its methods.
type Database struct {
	mu      sync.RWMutex
	storage Storage
	pending []Tx
}

// New constructs a database over the storage holding only the genesis
// block. Anything already in the storage is cleared.
func New(storage Storage) (*Database, error) {
	db := Database{
		storage: storage,
	}

	if err := db.createGenesis(); err != nil {
		return nil, err
	}

	return &db, nil
}

// createGenesis writes the sentinel genesis block with an empty pool.
func (db *Database) createGenesis() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return fmt.Errorf("resetting storage: %w", err)
	}

	if err := db.storage.Write(NewGenesisBlock()); err != nil {
		return fmt.Errorf("writing genesis: %w", err)
	}

	db.pending = []Tx{}

	return nil
}

// Close closes the underlying storage.
func (db *Database) Close() error {
	if db.storage == nil {
		return nil
	}

	return db.storage.Close()
}

// =============================================================================

// RecordTransaction adds the transaction to the pending pool and returns the
// index of the block the transaction is expected to land in.
func (db *Database) RecordTransaction(tx Tx) (uint64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	head, err := db.head()
	if err != nil {
		return 0, err
	}

	db.pending = append(db.pending, tx)

	return head.Index + 1, nil
}

// SealBlock builds the next block from the live pending pool using the
// provided proof of work values. The pool is cleared and the block appended
// in one step.
func (db *Database) SealBlock(nonce uint64, prevHash string, hash string) (Block, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	block := Block{
		Index:        uint64(db.storage.Len()) + 1,
		TimeStamp:    time.Now().UnixMilli(),
		Transactions: db.pending,
		Nonce:        nonce,
		Hash:         hash,
		PrevHash:     prevHash,
	}

	if err := db.storage.Write(block); err != nil {
		return Block{}, err
	}

	db.pending = []Tx{}

	block.Transactions = copyTxs(block.Transactions)
	return block, nil
}

// AppendBlock adds a block received from a peer to the end of the chain and
// clears the pending pool. The caller is responsible for checking the block
// links to the current head.
func (db *Database) AppendBlock(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	block.Transactions = copyTxs(block.Transactions)

	if err := db.storage.Write(block); err != nil {
		return err
	}

	db.pending = []Tx{}

	return nil
}

// ReplaceChain swaps the chain and pending pool wholesale. The new chain must
// already be validated. A chain whose indexes don't run 1, 2, 3... is
// refused before anything is changed.
func (db *Database) ReplaceChain(chain []Block, pending []Tx) error {
	if len(chain) == 0 {
		return ErrEmptyChain
	}

	for i, block := range chain {
		if block.Index != uint64(i+1) {
			return fmt.Errorf("%w: got blk[%d] at position %d", ErrBlockOutOfOrder, block.Index, i+1)
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return fmt.Errorf("resetting storage: %w", err)
	}

	for _, block := range copyBlocks(chain) {
		if err := db.storage.Write(block); err != nil {
			return fmt.Errorf("writing blk[%d]: %w", block.Index, err)
		}
	}

	db.pending = copyTxs(pending)

	return nil
}

// =============================================================================

// Head returns the last block in the chain.
func (db *Database) Head() (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.head()
}

// head returns the last block. The caller must hold the lock.
func (db *Database) head() (Block, error) {
	if db.storage == nil || db.storage.Len() == 0 {
		return Block{}, ErrEmptyChain
	}

	return db.storage.GetBlock(uint64(db.storage.Len()))
}

// forEach calls the function for every block in chain order until the
// function returns false. The caller must hold the lock.
func (db *Database) forEach(f func(block Block) bool) {
	if db.storage == nil {
		return
	}

	iter := db.storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil || !f(block) {
			return
		}
	}
}

// Len returns the number of blocks in the chain.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.storage == nil {
		return 0
	}

	return db.storage.Len()
}

// PendingLen returns the number of transactions waiting to be sealed.
func (db *Database) PendingLen() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.pending)
}

// Pending returns a copy of the pending pool.
func (db *Database) Pending() []Tx {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return copyTxs(db.pending)
}

// Copy returns a copy of the chain and pending pool.
func (db *Database) Copy() ChainState {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var chain []Block
	db.forEach(func(block Block) bool {
		chain = append(chain, block)
		return true
	})

	cs := ChainState{
		Chain:   copyBlocks(chain),
		Pending: copyTxs(db.pending),
	}

	return cs
}
// Snapshot returns the values the proof of work needs to mine the next
// block: the head's hash and the payload built from a copy of the pool.
func (db *Database) Snapshot() (string, Payload, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	head, err := db.head()
	if err != nil {
		return "", Payload{}, err
	}

	payload := Payload{
		Transactions: copyTxs(db.pending),
		Index:        head.Index + 1,
	}

	return head.Hash, payload, nil
}
