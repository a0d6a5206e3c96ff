package state

import (
	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
)

// SubmitTransaction creates a new transaction, records it in the pending
// pool and shares it with the known peers. It returns the transaction and
// the index of the block it is expected to land in.
func (s *State) SubmitTransaction(amount float64, sender string, recipient string) (database.Tx, uint64, error) {
	tx, err := database.NewTx(amount, sender, recipient)
	if err != nil {
		return database.Tx{}, 0, err
	}

	idx, err := s.db.RecordTransaction(tx)
	if err != nil {
		return database.Tx{}, 0, err
	}

	s.evHandler("state: SubmitTransaction: tx[%s]: blk[%d]", tx, idx)

	s.Worker.SignalShareTx(tx)

	return tx, idx, nil
}

// RecordPeerTransaction records a transaction shared by a peer as is. It is
// not shared again.
func (s *State) RecordPeerTransaction(tx database.Tx) (uint64, error) {
	idx, err := s.db.RecordTransaction(tx)
	if err != nil {
		return 0, err
	}

	s.evHandler("state: RecordPeerTransaction: tx[%s]: blk[%d]", tx, idx)

	return idx, nil
}

// =============================================================================

// AddKnownPeer provides the ability to add a new peer. Adding this node or
// a peer that is already known does nothing and returns false.
func (s *State) AddKnownPeer(pr peer.Peer) bool {
	if pr.Host == "" || pr.Match(s.host) {
		return false
	}

	return s.knownPeers.Add(pr)
}

// RemoveKnownPeer provides the ability to remove a peer.
func (s *State) RemoveKnownPeer(pr peer.Peer) {
	s.knownPeers.Remove(pr)
}

// RegisterAndSharePeer adds a new peer and, the first time it is seen, asks
// the worker to introduce it to the network.
func (s *State) RegisterAndSharePeer(pr peer.Peer) bool {
	if !s.AddKnownPeer(pr) {
		return false
	}

	s.evHandler("state: RegisterAndSharePeer: peer[%s]", pr)

	s.Worker.SignalSharePeer(pr)

	return true
}

// SubmitRewardTransaction submits the mining reward for this node. It is
// called once a locally mined block has been shared.
func (s *State) SubmitRewardTransaction() (database.Tx, uint64, error) {
	return s.SubmitTransaction(database.MiningReward, database.RewardSender, s.nodeAddress)
}
