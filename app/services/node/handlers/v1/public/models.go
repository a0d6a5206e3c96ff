package public

import (
	"github.com/ledgerd/node/foundation/blockchain/database"
)

// chainState is the view of the node's ledger returned to clients.
type chainState struct {
	Chain          []database.Block `json:"chain"`
	Pending        []database.Tx    `json:"pendingTransactions"`
	CurrentNodeURL string           `json:"currentNodeUrl"`
	NetworkNodes   []string         `json:"networkNodes"`
}

// newTx is what a client submits to create a transaction. Amount is a
// pointer so a missing amount can be told apart from zero.
type newTx struct {
	Amount    *float64 `json:"amount" validate:"required"`
	Sender    string   `json:"sender" validate:"required"`
	Recipient string   `json:"recipient" validate:"required"`
}

type txSubmitted struct {
	Note        string      `json:"note"`
	BlockIndex  uint64      `json:"blockIndex"`
	Transaction database.Tx `json:"transaction"`
}

type blockMined struct {
	Note  string         `json:"note"`
	Block database.Block `json:"block"`
}

type consensusResult struct {
	Note     string           `json:"note"`
	Replaced bool             `json:"replaced"`
	Chain    []database.Block `json:"chain"`
}

// registerNode asks this node to register a new node and introduce it to
// the rest of the network.
type registerNode struct {
	NewNodeURL string `json:"newNodeUrl" validate:"required"`
}

type blockFound struct {
	Block database.Block `json:"block"`
}

type txFound struct {
	Transaction database.Tx    `json:"transaction"`
	Block       database.Block `json:"block"`
}

type addressSummary struct {
	Address      string        `json:"address"`
	Transactions []database.Tx `json:"addressTransactions"`
	Balance      float64       `json:"addressBalance"`
}
