// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
	"github.com/ledgerd/node/foundation/blockchain/storage/memory"
)

// EventHandler defines a function that is called when events
// occur in the processing of the blockchain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for sharing transactions, blocks and peers
// with the network.
type Worker interface {
	Shutdown()
	SignalShareTx(tx database.Tx)
	SignalShareBlock(block database.Block)
	SignalSharePeer(pr peer.Peer)
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	NodeAddress string
	Host        string
	KnownPeers  *peer.PeerSet
	Storage     database.Storage
	EvHandler   EventHandler
}

// State manages the blockchain database.
type State struct {
	mu sync.Mutex

	nodeAddress string
	host        string
	evHandler   EventHandler

	knownPeers *peer.PeerSet
	db         *database.Database

	Worker Worker
}

// New constructs a new blockchain for data management. The chain starts
// with only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Generate an address for the mining rewards if one isn't provided.
	nodeAddress := cfg.NodeAddress
	if nodeAddress == "" {
		id, err := database.NewID()
		if err != nil {
			return nil, err
		}
		nodeAddress = id
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	// This node is never a peer of itself.
	knownPeers.Remove(peer.New(cfg.Host))

	// The chain lives in memory unless other storage is provided.
	storage := cfg.Storage
	if storage == nil {
		mem, err := memory.New()
		if err != nil {
			return nil, err
		}
		storage = mem
	}

	db, err := database.New(storage)
	if err != nil {
		return nil, err
	}

	state := State{
		nodeAddress: nodeAddress,
		host:        peer.New(cfg.Host).Host,
		evHandler:   ev,
		knownPeers:  knownPeers,
		db:          db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all network sharing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return s.db.Close()
}
