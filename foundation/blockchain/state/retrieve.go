package state

import (
	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
)

// RetrieveHost returns a copy of host information.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveNodeAddress returns the address mining rewards are paid to.
func (s *State) RetrieveNodeAddress() string {
	return s.nodeAddress
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	block, err := s.db.Head()
	if err != nil {
		s.evHandler("state: RetrieveLatestBlock: ERROR: %s", err)
	}

	return block
}

// RetrieveChainState returns a copy of the chain and pending pool.
func (s *State) RetrieveChainState() database.ChainState {
	return s.db.Copy()
}

// RetrievePending returns a copy of the pending pool.
func (s *State) RetrievePending() []database.Tx {
	return s.db.Pending()
}

// RetrieveKnownPeers retrieves a copy of the known peer list.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}

// RetrieveStatus returns the status information this node shares with
// its peers.
func (s *State) RetrieveStatus() peer.PeerStatus {
	latest := s.RetrieveLatestBlock()

	status := peer.PeerStatus{
		LatestBlockHash:  latest.Hash,
		LatestBlockIndex: latest.Index,
		KnownPeers:       s.RetrieveKnownPeers(),
	}

	return status
}
