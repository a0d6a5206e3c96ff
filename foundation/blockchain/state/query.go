package state

import (
	"github.com/ledgerd/node/foundation/blockchain/database"
)

// QueryBlockByHash returns the block with the specified hash.
func (s *State) QueryBlockByHash(hash string) (database.Block, bool) {
	return s.db.FindBlockByHash(hash)
}

// QueryTransaction returns the sealed transaction with the specified id and
// the block holding it.
func (s *State) QueryTransaction(id string) (database.Tx, database.Block, bool) {
	return s.db.FindTransaction(id)
}

// QueryAddress returns the sealed transactions an address takes part in and
// its balance.
func (s *State) QueryAddress(address string) ([]database.Tx, float64) {
	return s.db.AddressSummary(address)
}

// QueryPendingLength returns the current length of the pending pool.
func (s *State) QueryPendingLength() int {
	return s.db.PendingLen()
}
