package database

import (
	"fmt"
	"time"
)

// Genesis sentinel values. These are fixed, not computed.
const (
	GenesisIndex    uint64 = 1
	GenesisNonce    uint64 = 100
	GenesisPrevHash        = "0"
	GenesisHash            = "0"
)

// =============================================================================

// Block represents a sealed, hash linked batch of transactions.
type Block struct {
	Index        uint64 `json:"index"`             // 1-based position in the chain.
	TimeStamp    int64  `json:"timestamp"`         // Milliseconds since epoch, informational only.
	Transactions []Tx   `json:"transactions"`      // Transactions as sealed, never nil.
	Nonce        uint64 `json:"nonce"`             // Value that solved the proof of work.
	Hash         string `json:"hash"`              // Identity of this block.
	PrevHash     string `json:"previousBlockHash"` // Hash of the preceding block.
}

// NewGenesisBlock constructs the fixed first block of every chain.
func NewGenesisBlock() Block {
	return Block{
		Index:        GenesisIndex,
		TimeStamp:    time.Now().UnixMilli(),
		Transactions: []Tx{},
		Nonce:        GenesisNonce,
		Hash:         GenesisHash,
		PrevHash:     GenesisPrevHash,
	}
}

// Payload returns the structured value that is hashed for this block.
func (b Block) Payload() Payload {
	return Payload{
		Transactions: b.Transactions,
		Index:        b.Index,
	}
}

// IsGenesis reports if the block carries every genesis sentinel value.
func (b Block) IsGenesis() bool {
	return b.Index == GenesisIndex &&
		b.Nonce == GenesisNonce &&
		b.PrevHash == GenesisPrevHash &&
		b.Hash == GenesisHash &&
		len(b.Transactions) == 0
}

// String implements the fmt.Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("blk[%d]: prevBlk[%s]: hash[%s]: nonce[%d]: numTrans[%d]", b.Index, b.PrevHash, b.Hash, b.Nonce, len(b.Transactions))
}

// =============================================================================

// Payload is the block content that participates in the hash. The field
// order defines the canonical serialization and must not change.
type Payload struct {
	Transactions []Tx   `json:"transactions"`
	Index        uint64 `json:"index"`
}

// ChainState is a full copy of a node's chain and pending pool. It is what
// peers exchange during consensus.
type ChainState struct {
	Chain   []Block `json:"chain"`
	Pending []Tx    `json:"pendingTransactions"`
}

// Len returns the number of blocks in the chain.
func (cs ChainState) Len() int {
	return len(cs.Chain)
}

// copyBlocks returns a deep enough copy of the blocks so callers can't
// mutate the transactions held by the ledger.
func copyBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		b.Transactions = copyTxs(b.Transactions)
		out[i] = b
	}
	return out
}
