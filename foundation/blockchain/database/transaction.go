package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RewardSender is the reserved sender used for mining reward transactions.
const RewardSender = "00"

// MiningReward is the amount paid to a node for sealing a block.
const MiningReward = 12.5

// =============================================================================

// Tx represents a transfer of value between two addresses. Once sealed into a
// block a transaction is never mutated again.
type Tx struct {
	Amount    float64 `json:"amount"`
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	ID        string  `json:"transactionId"`
}

// NewTx constructs a transaction with a fresh unique id.
func NewTx(amount float64, sender string, recipient string) (Tx, error) {
	id, err := NewID()
	if err != nil {
		return Tx{}, err
	}

	tx := Tx{
		Amount:    amount,
		Sender:    sender,
		Recipient: recipient,
		ID:        id,
	}

	return tx, nil
}

// NewRewardTx constructs the transaction that pays the mining reward to
// the specified node address.
func NewRewardTx(nodeAddress string) (Tx, error) {
	return NewTx(MiningReward, RewardSender, nodeAddress)
}

// NewID generates a time based unique id with the dashes removed.
func NewID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}

	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// IsReward reports if the transaction is a mining reward.
func (tx Tx) IsReward() bool {
	return tx.Sender == RewardSender
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s->%s:%v", tx.ID, tx.Sender, tx.Recipient, tx.Amount)
}

// copyTxs returns a copy of the transactions that is never nil.
func copyTxs(txs []Tx) []Tx {
	out := make([]Tx, len(txs))
	copy(out, txs)
	return out
}
