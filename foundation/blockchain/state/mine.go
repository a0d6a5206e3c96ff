package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerd/node/foundation/blockchain/database"
)

// ErrChainChanged is returned when the head of the chain moved while a
// proof of work was being solved. The solution is discarded.
var ErrChainChanged = errors.New("chain changed while mining")

// ErrBlockRejected is returned when a block received from a peer does not
// extend the local head.
var ErrBlockRejected = errors.New("block rejected")

// =============================================================================

// MineNewBlock solves the proof of work over a snapshot of the pending pool
// and seals a new block. No lock is held while solving so transactions can
// still be submitted. The sealed block takes the live pool at seal time,
// which can hold more transactions than the snapshot that was hashed.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: snapshot ledger")

	prevHash, payload, err := s.db.Snapshot()
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: perform POW: blk[%d]: numTrans[%d]", payload.Index, len(payload.Transactions))

	t := time.Now()
	nonce, err := database.POW(ctx, prevHash, payload, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}
	hash := database.Hash(prevHash, nonce, payload)

	s.evHandler("state: MineNewBlock: MINING: mining duration[%v]", time.Since(t))

	block, err := s.sealBlock(nonce, prevHash, hash)
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: sealed: %s", block)

	// The worker shares the block with the peers and then submits the
	// mining reward so it lands in the next block.
	s.Worker.SignalShareBlock(block)

	s.blockEvent(block)

	return block, nil
}

// sealBlock seals the live pool if the head is still the block the proof of
// work was solved against.
func (s *State) sealBlock(nonce uint64, prevHash string, hash string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.db.Head()
	if err != nil {
		return database.Block{}, err
	}

	if head.Hash != prevHash {
		return database.Block{}, fmt.Errorf("%w: solved against %s, head is %s", ErrChainChanged, prevHash, head.Hash)
	}

	return s.db.SealBlock(nonce, prevHash, hash)
}

// ProcessPeerBlock takes a block mined by a peer and appends it to the chain
// if it links to the local head and carries the next index. Otherwise the
// block is rejected and nothing changes.
func (s *State) ProcessPeerBlock(block database.Block) error {
	s.evHandler("state: ProcessPeerBlock: started: %s", block)
	defer s.evHandler("state: ProcessPeerBlock: completed: blk[%d]", block.Index)

	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.db.Head()
	if err != nil {
		return err
	}

	if block.PrevHash != head.Hash {
		return fmt.Errorf("%w: previous hash doesn't match head, got %s, exp %s", ErrBlockRejected, block.PrevHash, head.Hash)
	}

	if block.Index != head.Index+1 {
		return fmt.Errorf("%w: not the next index, got %d, exp %d", ErrBlockRejected, block.Index, head.Index+1)
	}

	if block.Transactions == nil {
		block.Transactions = []database.Tx{}
	}

	if err := s.db.AppendBlock(block); err != nil {
		return fmt.Errorf("%w: %w", ErrBlockRejected, err)
	}

	s.blockEvent(block)

	return nil
}

// =============================================================================

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: %s`, string(blockJSON))
}
