package database

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrEmptyChain is returned when a chain has no blocks at all.
var ErrEmptyChain = errors.New("chain is empty")

// =============================================================================

// Validate walks the candidate chain and reports every failed check. Each
// non-genesis block must link to its predecessor's hash and the hash
// recomputed from the block contents must be solved. The genesis block must
// carry the sentinel values. All blocks are checked even after a failure.
//
// The stored hash of a block is not compared with the recomputed hash, only
// the recomputed hash is checked against the difficulty.
func Validate(chain []Block) error {
	if len(chain) == 0 {
		return ErrEmptyChain
	}

	var err error

	for i := 1; i < len(chain); i++ {
		prev := chain[i-1]
		cur := chain[i]

		if cur.PrevHash != prev.Hash {
			err = multierr.Append(err, fmt.Errorf("blk[%d]: previous hash doesn't match parent, got %s, exp %s", cur.Index, cur.PrevHash, prev.Hash))
		}

		hash := Hash(prev.Hash, cur.Nonce, cur.Payload())
		if !IsHashSolved(hash) {
			err = multierr.Append(err, fmt.Errorf("blk[%d]: recomputed hash %s is not solved", cur.Index, hash))
		}
	}

	if !chain[0].IsGenesis() {
		err = multierr.Append(err, fmt.Errorf("blk[%d]: first block is not the genesis block", chain[0].Index))
	}

	return err
}

// IsValid reports whether the candidate chain passes every validation check.
func IsValid(chain []Block) bool {
	return Validate(chain) == nil
}
